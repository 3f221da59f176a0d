// Package state loads client configuration for the heartbeat tools.
package state

import (
	"encoding/hex"
	"net"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/denghub/libnetkeeper/helpers"
	"github.com/denghub/libnetkeeper/singlenet"
)

type Config struct {
	// includeSeen contains normalized paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Client struct {
		Username        string `hcl:"username"`
		IP              string `hcl:"ip"`
		MAC             string `hcl:"mac"` // 4 bytes, hex, separators optional
		Version         string `hcl:"version"`
		Type            string `hcl:"type"`
		OSVersion       string `hcl:"os_version"`
		OSLanguage      string `hcl:"os_language"`
		CPUInfo         string `hcl:"cpu"`
		MemorySize      int    `hcl:"memory_size"`
		DefaultExplorer string `hcl:"explorer"`
	}

	Keepalive struct {
		IntervalSec int  `hcl:"interval_sec"`
		LogDebug    bool `hcl:"log_debug"`
	}
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

// ClientInfo parses the textual client block into the identity the
// attribute constructors take.
func (c *Config) ClientInfo() (singlenet.ClientInfo, error) {
	ci := singlenet.ClientInfo{
		Username:        c.Client.Username,
		Version:         c.Client.Version,
		Type:            c.Client.Type,
		OSVersion:       c.Client.OSVersion,
		OSLanguage:      c.Client.OSLanguage,
		CPUInfo:         c.Client.CPUInfo,
		MemorySize:      uint32(c.Client.MemorySize),
		DefaultExplorer: c.Client.DefaultExplorer,
	}

	ip := net.ParseIP(c.Client.IP)
	if ip == nil || ip.To4() == nil {
		return ci, errors.Errorf("config client.ip=%s invalid, must be IPv4", c.Client.IP)
	}
	ci.IP = ip

	mac, err := parseMAC(c.Client.MAC)
	if err != nil {
		return ci, errors.Annotatef(err, "config client.mac=%s", c.Client.MAC)
	}
	ci.MAC = mac
	return ci, nil
}

// parseMAC reads the protocol's 4 byte hardware address from hex,
// with or without : or - separators.
func parseMAC(s string) (mac [4]byte, err error) {
	clean := strings.NewReplacer(":", "", "-", "").Replace(s)
	b, err := hex.DecodeString(clean)
	if err != nil {
		return mac, errors.Trace(err)
	}
	if len(b) != len(mac) {
		return mac, errors.Errorf("expected %d bytes, got %d", len(mac), len(b))
	}
	copy(mac[:], b)
	return mac, nil
}

func (c *Config) read(log *zap.SugaredLogger, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *zap.SugaredLogger, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *zap.SugaredLogger, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
