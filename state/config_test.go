package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testConfigFull = `
client {
  username = "05802278989@HYXY.XY"
  ip = "124.77.234.214"
  mac = "00:e0:4c:39"
  version = "1.2.22.36"
  type = "D"
  os_version = "5.1"
  os_language = "zh-CN"
  cpu = "Intel(R) Celeron(R) CPU"
  memory_size = 1024
  explorer = "iexplore"
}
keepalive {
  interval_sec = 20
}
`

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		sources   map[string]string
		check     func(t testing.TB, c *Config)
		expectErr string
	}
	cases := []Case{
		{"full", map[string]string{"main": testConfigFull},
			func(t testing.TB, c *Config) {
				assert.Equal(t, "05802278989@HYXY.XY", c.Client.Username)
				assert.Equal(t, 20, c.Keepalive.IntervalSec)
				ci, err := c.ClientInfo()
				require.NoError(t, err)
				assert.Equal(t, "124.77.234.214", ci.IP.String())
				assert.Equal(t, [4]byte{0x00, 0xe0, 0x4c, 0x39}, ci.MAC)
				assert.Equal(t, uint32(1024), ci.MemorySize)
			}, ""},

		{"include", map[string]string{
			"main":  `include "extra" {} client { username = "u" }`,
			"extra": `client { ip = "10.0.0.2" mac = "1a2b3c4d" }`,
		},
			func(t testing.TB, c *Config) {
				assert.Equal(t, "u", c.Client.Username)
				ci, err := c.ClientInfo()
				require.NoError(t, err)
				assert.Equal(t, "10.0.0.2", ci.IP.String())
			}, ""},

		{"include-optional-missing", map[string]string{
			"main": `include "nope" { optional = true }` + testConfigFull,
		},
			func(t testing.TB, c *Config) {
				assert.Equal(t, "D", c.Client.Type)
			}, ""},

		{"include-missing", map[string]string{
			"main": `include "nope" {}`,
		}, nil, "not found"},

		{"include-loop", map[string]string{
			"main": `include "main" {}`,
		}, nil, "include loop"},

		{"malformed", map[string]string{
			"main": `client {`,
		}, nil, "config unmarshal"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			log := zaptest.NewLogger(t).Sugar()
			cfg, err := ReadConfig(log, NewMockFullReader(c.sources), "main")
			if c.expectErr == "" {
				require.NoError(t, err)
				c.check(t, cfg)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.expectErr)
			}
		})
	}
}

func TestClientInfoErrors(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		expectErr string
	}
	cases := []Case{
		{"ip-missing", `client { mac = "1a2b3c4d" }`, "must be IPv4"},
		{"ip-v6", `client { ip = "fe80::1" mac = "1a2b3c4d" }`, "must be IPv4"},
		{"mac-bad-hex", `client { ip = "10.0.0.1" mac = "zz" }`, "client.mac"},
		{"mac-6-bytes", `client { ip = "10.0.0.1" mac = "00:e0:4c:39:00:01" }`, "expected 4 bytes"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			log := zaptest.NewLogger(t).Sugar()
			cfg, err := ReadConfig(log, NewMockFullReader(map[string]string{"main": c.input}), "main")
			require.NoError(t, err)
			_, err = cfg.ClientInfo()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), c.expectErr),
				"err=%s expected substring %s", err.Error(), c.expectErr)
		})
	}
}
