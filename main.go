package main

import (
	"os"

	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/solotto/solotto-bot/bot"
	"github.com/solotto/solotto-bot/cache"
	"github.com/solotto/solotto-bot/config"
	"github.com/solotto/solotto-bot/network"
	"github.com/solotto/solotto-bot/price"
	"github.com/solotto/solotto-bot/reconcile"
	"github.com/solotto/solotto-bot/utils"
	"github.com/urfave/cli"
)

var log = logger.GetOrCreate("main")

var (
	configPathFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Path of the application configuration file",
		Value: utils.DefaultConfigPath,
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "Logger levels, eg. *:INFO,reconcile:DEBUG",
		Value: "*:INFO",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "Solotto bot"
	app.Usage = "Telegram bot for the Solotto on-chain lottery"
	app.Flags = []cli.Flag{configPathFlag, logLevelFlag}
	app.Action = run

	err := app.Run(os.Args)
	if err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevelFlag.Name))
	if err != nil {
		return err
	}

	cfg, err := config.NewConfig(ctx.GlobalString(configPathFlag.Name))
	if err != nil {
		log.Error("can not read the configuration file", "error", err)
		return err
	}
	utils.Seedphrase = cfg.Seedphrase

	networkManager, err := network.NewManager(cfg)
	if err != nil {
		return err
	}

	cacheStore, err := cache.NewStore(cfg.CachePath)
	if err != nil {
		log.Error("can not open the cache file", "path", cfg.CachePath, "error", err)
		return err
	}

	reconciler := reconcile.NewReconciler(networkManager, cacheStore, reconcile.Params{
		TreasuryAddress:     cfg.Lottery.TreasuryAddress,
		FeeAddress:          cfg.Lottery.FeeAddress,
		GrossTicketLamports: cfg.Lottery.GrossTicketLamports,
		LegacySeasonID:      cfg.Lottery.LegacySeasonID,
	})

	priceClient := price.NewClient(cfg.Network.PriceEndpoint, cfg.Lottery.TicketPriceUSD)

	b, err := bot.NewBot(cfg, networkManager, reconciler, cacheStore, priceClient)
	if err != nil {
		return err
	}

	b.StartTasks()
	log.Info("application started")

	select {}
}
