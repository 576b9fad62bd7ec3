package main

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/accrual/b"
	"github.com/optakt/accrual/config"
	"github.com/optakt/accrual/event"
	"github.com/optakt/accrual/scenario"
	"github.com/optakt/accrual/store"
	"github.com/optakt/accrual/write"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	var (
		configPath   string
		scenarioPath string
		statePath    string

		influxURL    string
		influxToken  string
		influxOrg    string
		influxBucket string

		reserve  string
		logLevel string
	)

	pflag.StringVarP(&configPath, "config", "c", "", "path to the YAML parameters file")
	pflag.StringVarP(&scenarioPath, "scenario", "s", "", "path to the CSV scenario to replay")
	pflag.StringVar(&statePath, "state", "", "path to the LevelDB directory holding the engine state")

	pflag.StringVar(&influxURL, "influx-url", "", "InfluxDB server URL, empty to disable point export")
	pflag.StringVar(&influxToken, "influx-token", "", "InfluxDB authentication token")
	pflag.StringVar(&influxOrg, "influx-org", "optakt", "InfluxDB organization")
	pflag.StringVar(&influxBucket, "influx-bucket", "accrual", "InfluxDB bucket")

	pflag.StringVarP(&reserve, "reserve", "r", "1000000", "reward tokens minted to the rewards vault")
	pflag.StringVarP(&logLevel, "log-level", "l", "info", "log output level")

	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Error().Err(err).Str("log_level", logLevel).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	file := config.Default()
	if configPath != "" {
		file, err = config.Load(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("could not load configuration")
			return failure
		}
	}
	params, err := file.Reward()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return failure
	}

	genesis := file.Genesis
	if genesis == 0 {
		genesis = uint64(time.Now().Unix())
	}

	amount, err := b.FromDecimal(reserve, 18)
	if err != nil {
		log.Error().Err(err).Str("reserve", reserve).Msg("could not parse reward reserve")
		return failure
	}

	emitter := event.Fanout{event.NewLogger(log)}

	var outbound write.Writer
	if influxURL != "" {
		client := influxdb2.NewClient(influxURL, influxToken)
		defer client.Close()
		api := client.WriteAPI(influxOrg, influxBucket)
		defer api.Flush()
		go func() {
			for err := range api.Errors() {
				log.Warn().Err(err).Msg("could not write point")
			}
		}()
		outbound = api
		emitter = append(emitter, write.NewSink(api))
	}

	var state *store.Store
	if statePath != "" {
		state, err = store.Open(statePath)
		if err != nil {
			log.Error().Err(err).Str("state", statePath).Msg("could not open state")
			return failure
		}
		defer state.Close()
	}

	engine, ledger, err := open(params, genesis, amount, state, emitter, log)
	if err != nil {
		log.Error().Err(err).Str("state", statePath).Msg("could not start engine")
		return failure
	}
	genesis = engine.StartDropTimestamp()

	if scenarioPath != "" {
		actions, err := scenario.Load(scenarioPath)
		if err != nil {
			log.Error().Err(err).Str("scenario", scenarioPath).Msg("could not load scenario")
			return failure
		}

		rejected := 0
		for _, action := range actions {
			err = action.Apply(engine, ledger, genesis)
			if err != nil {
				rejected++
				log.Warn().
					Err(err).
					Str("op", action.Op).
					Stringer("user", action.User).
					Uint64("offset", action.Offset).
					Msg("scenario action rejected")
				continue
			}
			if outbound != nil {
				writeState(time.Unix(int64(genesis+action.Offset), 0).UTC(), engine, outbound)
			}
		}

		log.Info().
			Int("actions", len(actions)).
			Int("rejected", rejected).
			Msg("scenario replayed")
	}

	for _, user := range engine.Users() {
		account := engine.Account(user)
		log.Info().
			Stringer("user", user).
			Str("balance", humanize.CommafWithDigits(b.ToFloat(&account.Balance, 18), 4)).
			Str("locked", humanize.CommafWithDigits(b.ToFloat(&account.Lock.Amount, 18), 4)).
			Str("claimable", humanize.CommafWithDigits(b.ToFloat(&account.Claimable, 18), 6)).
			Str("wallet", humanize.CommafWithDigits(b.ToFloat(ledger.BalanceOf(user), 18), 4)).
			Msg("account summary")
	}
	log.Info().
		Str("total_supply", humanize.CommafWithDigits(b.ToFloat(engine.TotalSupply(), 18), 4)).
		Str("total_locked", humanize.CommafWithDigits(b.ToFloat(engine.TotalLocked(), 18), 4)).
		Str("drop_per_second", humanize.CommafWithDigits(b.ToFloat(engine.CurrentDropPerSecond(), 18), 8)).
		Str("reward_index", engine.RewardIndex().Dec()).
		Msg("engine summary")

	if state != nil {
		err = state.Save(engine.Snapshot())
		if err != nil {
			log.Error().Err(err).Str("state", statePath).Msg("could not save state")
			return failure
		}
		log.Info().Str("state", statePath).Msg("engine state saved")
	}

	return success
}
