package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/avtools/qrcctl/internal/config"
	"github.com/avtools/qrcctl/internal/logging"
	"github.com/avtools/qrcctl/internal/observability"
	"github.com/avtools/qrcctl/internal/qrc"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "qrcctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("qrcctl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to core TOML config")
	addr := fs.String("addr", "", "core address host[:port], overrides config")
	user := fs.String("user", "", "logon user, overrides config")
	password := fs.String("password", "", "logon password, overrides config")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	timeout := fs.Duration("timeout", 10*time.Second, "per-command timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	clientCfg := qrc.DefaultConfig()
	coreAddr, logonUser, logonPass := *addr, *user, *password
	metrics := *metricsAddr

	if *configPath != "" {
		fileCfg, err := config.LoadCoreConfig(*configPath)
		if err != nil {
			return err
		}
		clientCfg = fileCfg.ClientConfig()
		if coreAddr == "" {
			coreAddr = fileCfg.Address
		}
		if logonUser == "" {
			logonUser = fileCfg.User
		}
		if logonPass == "" {
			logonPass = fileCfg.Password
		}
		if metrics == "" {
			metrics = fileCfg.MetricsAddr
		}
	}
	if coreAddr == "" {
		return errors.New("core address required (-addr or config file)")
	}

	if metrics != "" {
		observability.RegisterMetrics()
		go func() {
			if err := http.ListenAndServe(metrics, promhttp.Handler()); err != nil {
				log.Error().Err(err).Str("addr", metrics).Msg("metrics listener failed")
			}
		}()
	}

	core, err := qrc.NewCore(coreAddr, clientCfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := core.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = core.Close() }()

	if logonUser != "" {
		if _, err := core.Logon(ctx, logonUser, logonPass); err != nil {
			return fmt.Errorf("logon: %w", err)
		}
	}

	result, err := dispatch(ctx, core, fs.Args())
	if err != nil {
		return err
	}
	return printResult(result)
}

func dispatch(ctx context.Context, core *qrc.Core, args []string) (json.RawMessage, error) {
	cmd := "status"
	if len(args) > 0 {
		cmd = args[0]
	}
	switch cmd {
	case "status":
		return core.StatusGet(ctx)
	case "get":
		if len(args) < 2 {
			return nil, errors.New("usage: get <control> [control...]")
		}
		return core.Control.Get(ctx, args[1:]...)
	case "set":
		if len(args) != 3 {
			return nil, errors.New("usage: set <control> <value>")
		}
		return core.Control.Set(ctx, args[1], parseValue(args[2]))
	case "components":
		return core.Component.GetComponents(ctx)
	default:
		return nil, fmt.Errorf("unknown command %q (status, get, set, components)", cmd)
	}
}

// parseValue maps a CLI argument onto the control value types the core
// accepts: bool, number, or string.
func parseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if v, err := strconv.ParseBool(trimmed); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return v
	}
	return raw
}

func printResult(result json.RawMessage) error {
	if len(result) == 0 {
		return nil
	}
	var pretty any
	if err := json.Unmarshal(result, &pretty); err != nil {
		fmt.Println(string(result))
		return nil
	}
	out, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
