package bot

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/solotto/solotto-bot/config"
	"github.com/solotto/solotto-bot/utils"
)

func (b *Bot) privateCommandReceived(message *tgbotapi.Message) {
	cmd := message.Command()
	args := message.CommandArguments()
	name := utils.FormatTgUser(message.From)

	user := b.getOrCreateUser(message.From)
	log.Info("private command received", "command", cmd, "args", args, "user", name)

	if cmd == "start" {
		msg := tgbotapi.NewMessage(user.ID, helpMessage)
		msg.ParseMode = tgbotapi.ModeMarkdown
		b.tgBot.Send(msg)
		b.mainMenu(user)
		return
	}

	if user.ID != b.cfg.Bot.Owner {
		return
	}

	switch cmd {
	case "startseason":
		b.startSeason(user.ID, args)
	case "endseason":
		b.endSeason(user.ID, args)
	case "claimcommission":
		b.claimCommission(user.ID)
	}
}

func (b *Bot) startSeason(ownerID int64, args string) {
	seasonID, err := strconv.ParseUint(args, 10, 32)
	if err != nil {
		b.sendMessage(ownerID, "Usage: /startseason <season id>")
		return
	}

	admin := utils.GetPrivateKeyFromSeed(0)
	instructions, err := b.networkManager.BuildStartSeason(admin.PublicKey(), uint32(seasonID))
	if err != nil {
		b.reportError("can not build start season instruction: " + err.Error())
		return
	}

	signature, err := b.networkManager.SubmitTransaction(context.Background(), instructions, admin)
	if err != nil {
		log.Error("start season submission failed", "season", seasonID, "error", err)
		b.sendMessage(ownerID, "⛔️ Start season failed. See the logs for details.")
		return
	}

	b.cfg.Lottery.CurrentSeasonID = uint32(seasonID)
	_ = config.Save(b.cfg)
	b.sendMessage(ownerID, fmt.Sprintf("✅ Season #%v started: [tx](%s%s)", seasonID, b.cfg.Network.ExplorerTransaction, signature))
}

func (b *Bot) endSeason(ownerID int64, args string) {
	seasonID, err := strconv.ParseUint(args, 10, 32)
	if err != nil {
		b.sendMessage(ownerID, "Usage: /endseason <season id>")
		return
	}

	admin := utils.GetPrivateKeyFromSeed(0)
	instructions, err := b.networkManager.BuildEndSeason(admin.PublicKey(), uint32(seasonID))
	if err != nil {
		b.reportError("can not build end season instruction: " + err.Error())
		return
	}

	signature, err := b.networkManager.SubmitTransaction(context.Background(), instructions, admin)
	if err != nil {
		log.Error("end season submission failed", "season", seasonID, "error", err)
		b.sendMessage(ownerID, "⛔️ End season failed. See the logs for details.")
		return
	}

	b.sendMessage(ownerID, fmt.Sprintf("✅ Season #%v ended: [tx](%s%s)", seasonID, b.cfg.Network.ExplorerTransaction, signature))
}

func (b *Bot) claimCommission(ownerID int64) {
	admin := utils.GetPrivateKeyFromSeed(0)
	instructions := b.networkManager.BuildClaimCommission(admin.PublicKey())

	signature, err := b.networkManager.SubmitTransaction(context.Background(), instructions, admin)
	if err != nil {
		log.Error("claim commission submission failed", "error", err)
		b.sendMessage(ownerID, "⛔️ Claim commission failed. See the logs for details.")
		return
	}

	b.sendMessage(ownerID, fmt.Sprintf("✅ Commission claimed: [tx](%s%s)", b.cfg.Network.ExplorerTransaction, signature))
}
