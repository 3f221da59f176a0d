package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/denghub/libnetkeeper/helpers"
	"github.com/denghub/libnetkeeper/helpers/cli"
	"github.com/denghub/libnetkeeper/singlenet"
	"github.com/denghub/libnetkeeper/state"
)

const usage = `syntax: commands separated by whitespace
(main)
- hb       build heartbeat attribute block, show hex
- token    advance keepalive token chain, show token
- reset    restart token chain from the protocol seed
- t=N      pin timestamp to unix seconds N (t=0 back to current time)
- sN       pause N milliseconds

(meta)
- help     show this help
- log=yes  enable debug logging
- log=no   disable debug logging
- loop=N   repeat N times all commands on this line
`

type session struct {
	log    *zap.SugaredLogger
	level  zap.AtomicLevel
	client singlenet.ClientInfo
	chain  singlenet.TokenChain
	pinned uint32
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := cmdline.String("config", "netkeeper.hcl", "client config file (hcl)")
	cmdline.Parse(os.Args[1:])

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	zconf := zap.NewDevelopmentConfig()
	zconf.Level = level
	logger, err := zconf.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	config := state.MustReadConfig(log, state.NewOsFullReader(), *configPath)
	if config.Keepalive.LogDebug {
		level.SetLevel(zap.DebugLevel)
	}
	client, err := config.ClientInfo()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	log.Debugf("client username=%s ip=%s interval=%s",
		client.Username, client.IP,
		helpers.IntSecondDefault(config.Keepalive.IntervalSec, 20*time.Second))

	s := &session{log: log, level: level, client: client}
	cli.MainLoop("netkeeper", s.executor, completer)
}

func completer(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "hb", Description: "build heartbeat attribute block, show hex"},
		{Text: "token", Description: "advance keepalive token chain"},
		{Text: "reset", Description: "restart token chain from seed"},
		{Text: "t=N", Description: "pin timestamp to unix seconds N"},
		{Text: "sN", Description: "pause for N ms"},
		{Text: "help", Description: "show help"},
		{Text: "loop=N", Description: "repeat line N times"},
	}
	return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
}

func (self *session) timestamp() uint32 {
	if self.pinned != 0 {
		return self.pinned
	}
	return helpers.CurrentTimestamp()
}

func (self *session) executor(line string) {
	if line == "" {
		return
	}
	words := strings.Fields(line)
	loop := 1
	cmds := make([]string, 0, len(words))
	for _, w := range words {
		if arg, ok := strings.CutPrefix(w, "loop="); ok {
			n, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				self.log.Errorf("invalid loop=%s err=%s", arg, err)
				return
			}
			loop = int(n)
			continue
		}
		cmds = append(cmds, w)
	}
	for i := 0; i < loop; i++ {
		for _, w := range cmds {
			if err := self.run(w); err != nil {
				self.log.Errorf(errors.ErrorStack(err))
				return
			}
		}
	}
}

func (self *session) run(word string) error {
	switch {
	case word == "help":
		fmt.Print(usage)
	case word == "hb":
		ts := self.timestamp()
		token := self.chain.Next(ts)
		block := self.client.HeartbeatAttributes(ts, token).Bytes()
		self.log.Infof("hb ts=%d token=%s block=%s", ts, token, hex.EncodeToString(block))
	case word == "token":
		ts := self.timestamp()
		self.log.Infof("token ts=%d token=%s", ts, self.chain.Next(ts))
	case word == "reset":
		self.chain.Reset()
		self.log.Infof("token chain reset")
	case word == "log=yes":
		self.level.SetLevel(zap.DebugLevel)
	case word == "log=no":
		self.level.SetLevel(zap.InfoLevel)
	case strings.HasPrefix(word, "t="):
		n, err := strconv.ParseUint(word[2:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "invalid timestamp %s", word)
		}
		self.pinned = uint32(n)
	case len(word) > 1 && word[0] == 's':
		n, err := strconv.ParseUint(word[1:], 10, 32)
		if err != nil {
			return errors.Annotatef(err, "invalid pause %s", word)
		}
		time.Sleep(time.Duration(n) * time.Millisecond)
	default:
		return errors.Errorf("unknown command '%s', try help", word)
	}
	return nil
}
