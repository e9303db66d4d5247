package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Luismorlan/fileshare_in_go/commands"
	"github.com/Luismorlan/fileshare_in_go/config"
	"github.com/Luismorlan/fileshare_in_go/engine"
	"github.com/Luismorlan/fileshare_in_go/layout"
	"github.com/Luismorlan/fileshare_in_go/store"
	"github.com/Luismorlan/fileshare_in_go/utils"
	"github.com/Luismorlan/fileshare_in_go/visualize"
	"github.com/jroimartin/gocui"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v2"
)

var (
	configPath *string
	chainPath  *string
	offline    *bool
	debugMode  *bool
	manualPath *string
)

func init() {
	configPath = flag.String("config_path", "engine/cmd/config.yaml", "path to ledger config")
	chainPath = flag.String("chain_path", "", "where to persist the chain, overrides the config file")
	offline = flag.Bool("offline", false, "use an in-memory content store instead of an IPFS daemon")
	debugMode = flag.Bool("debug_mode", false, "Using debug mode will disable fancy GUI.")
	manualPath = flag.String("manual_path", "engine/cmd/usage.txt", "path of the command manual shown in the GUI")
}

// report prints a user-facing result. Plain mode renders through pterm;
// GUI mode rebinds this to the logger view.
var report = func(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

var reportErr = func(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

func ParseAppConfig(path string) config.AppConfig {
	c := config.AppConfig{}
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatal("yamlFile. get err: ", err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		log.Fatal("Unmarshal: ", err)
	}
	return c
}

// Parse command from stdio.
func ParseCommand(cmd chan commands.Command) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, _ := reader.ReadString('\n')
		// convert CRLF to LF
		text = strings.Replace(text, "\n", "", -1)
		c, err := commands.CreateCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

// HandleCommand runs every ledger operation the command surface knows.
// Mining runs in its own goroutine because it can take long; ctl relays a
// stop command into the nonce search without blocking this loop.
func HandleCommand(cmd chan commands.Command, eng *engine.LedgerEngine, persistPath string) {
	ctl := make(chan commands.Command, 1)
	isMining := false
	for {
		c := <-cmd
		switch c.Op {
		case commands.UPLOAD:
			data, err := ioutil.ReadFile(c.Args[0])
			if err != nil {
				reportErr("failed to read %s: %v", c.Args[0], err)
				continue
			}
			ref, err := eng.Upload(c.Args[1], data)
			if err != nil {
				reportErr("upload rejected: %v", err)
				continue
			}
			report("uploaded %s, content ref %s. Use 'mine' to confirm.", c.Args[0], ref)
		case commands.GRANT:
			if err := eng.Grant(c.Args[0], c.Args[1], c.Args[2]); err != nil {
				reportErr("grant rejected: %v", err)
				continue
			}
			report("access grant for %s staged. Use 'mine' to confirm.", c.Args[2])
		case commands.REQUEST:
			data, err := eng.Request(c.Args[0], c.Args[1])
			if err != nil {
				reportErr("request rejected: %v", err)
				continue
			}
			outPath, err := writeRetrieved(c.Args[2], c.Args[0], data)
			if err != nil {
				reportErr("failed to write retrieved file: %v", err)
				continue
			}
			report("retrieved %d bytes to %s", len(data), outPath)
			if hexDigest := utils.BytesToHex(utils.SHA256(data)); hexDigest == c.Args[0] {
				report("file integrity verified")
			}
		case commands.MINE:
			if isMining {
				log.Print("mining has already been started\n> ")
				continue
			}
			isMining = true
			go func() {
				block, _, err := eng.Mine(ctl)
				isMining = false
				if err != nil {
					reportErr("mine: %v", err)
					return
				}
				report("block %d mined, hash %s, %d transactions", block.Index, block.Hash, len(block.Txs))
				if persistPath != "" {
					if err := eng.PersistChain(persistPath); err != nil {
						reportErr("failed to persist chain: %v", err)
					}
				}
			}()
		case commands.STOP:
			if !isMining {
				log.Print("no running mining task to stop")
				continue
			}
			go func() {
				// Relay the signal to the mining goroutine separately so the
				// command loop never blocks.
				ctl <- c
			}()
		case commands.STATUS:
			s := eng.GetStatus()
			report("blocks: %d | pool: %d | valid: %t | tail: %s", s.ChainLength, s.PoolSize, s.Valid, s.TailHash)
		case commands.VALIDATE:
			if err := eng.Validate(); err != nil {
				reportErr("%v", err)
				continue
			}
			report("chain is valid")
		case commands.SHOW:
			d, err := strconv.Atoi(c.Args[0])
			if err != nil {
				log.Printf("%s is not a valid number for depth", c.Args[0])
				continue
			}
			visualize.Render(eng.ChainSnapshot(), d, eng.UUID())
		default:
			log.Print("Unrecognized command:", c)
		}
	}
}

func writeRetrieved(outputDir, contentRef string, data []byte) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outputDir, contentRef)
	if err := ioutil.WriteFile(outPath, data, 0644); err != nil {
		return "", err
	}
	return outPath, nil
}

func main() {
	flag.Parse()

	cfg := ParseAppConfig(*configPath)
	if *chainPath != "" {
		cfg.CHAIN_PATH = *chainPath
	}

	var cs store.ContentStore
	if *offline {
		cs = store.NewMemoryStore()
	} else {
		cs = store.NewIPFSStore(cfg.IPFS_API)
	}

	var eng *engine.LedgerEngine
	if cfg.CHAIN_PATH != "" {
		bc, err := utils.ParseChainFile(cfg.CHAIN_PATH, cfg.DIFFICULTY)
		if err != nil {
			log.Fatal("failed to load persisted chain: ", err)
		}
		eng, err = engine.NewLedgerEngineWithChain(cfg, cs, bc)
		if err != nil {
			log.Fatal("persisted chain failed validation: ", err)
		}
	} else {
		eng = engine.NewLedgerEngine(cfg, cs)
	}
	log.Println("ledger engine", eng.UUID(), "started with difficulty", cfg.DIFFICULTY)

	cmd := make(chan commands.Command)

	if *debugMode {
		go ParseCommand(cmd)
		go HandleCommand(cmd, eng, cfg.CHAIN_PATH)
		c := make(chan int)
		<-c
	}

	g, err := layout.CreateGui(cmd, *manualPath)
	if err != nil {
		log.Fatalln(err)
	}
	log.SetOutput(layout.LogWriter(g))
	report = func(format string, a ...interface{}) {
		log.Printf(format, a...)
	}
	reportErr = report

	go HandleCommand(cmd, eng, cfg.CHAIN_PATH)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		g.Close()
		log.Fatalln(err)
	}
	g.Close()
}
