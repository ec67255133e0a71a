package bot

const (
	menuSeasonInfo = "ℹ️ Season Info"
	menuBalance    = "💰 Balance"
	menuMyTickets  = "🎫 My Tickets"
	menuBuyTicket  = "🎟 Buy Ticket"
	menuBuy2       = "2️⃣ x 🎟"
	menuBuy3       = "3️⃣ x 🎟"
	menuBuy4       = "4️⃣ x 🎟"
	menuBuy5       = "5️⃣ x 🎟"
	menuMainHelp   = "📖 Help"
	menuAbout      = "©️ About"

	aboutMessage = "*Solotto* - a ticket lottery settled on the Solana blockchain"
)

var (
	helpMessage = "`DISCLAIMER !`\n" +
		"\n" +
		"🔴 Tickets are non-refundable. Winners are selected automatically when a season ends.\n" +
		"🟠 This bot is in no way sponsored, endorsed, administered by, or associated with Solana. By participating you agree to a complete release of Solana from any claims.\n" +
		"🟢 You agree to choose to join or stay in this group, you play on your own free will.\n" +
		"🟣 Must be 18 years old or older to play!\n" +
		"⚪️ Most importantly have fun and NO DRAMA!\n" +
		"\n" +
		"\n" +
		"`Instructions`\n" +
		"\n" +
		"This is the Telegram client of the Solotto ticket lottery running on the Solana blockchain.\n\n" +
		"The bot will generate a wallet for you from which you can buy tickets and where you receive the prizes.\n\n" +
		"You can watch the seasons' progress and discuss free topics on @Solotto\n\n" +
		"The bot's menu consists of a few intuitive options: `Season Info`, `Buy Ticket`, `My Tickets` and `Balance`. I assume they don't need any explanations.\n\n" +
		"\n" +
		"🍀 Good luck!"
)
