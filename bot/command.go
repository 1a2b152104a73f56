package bot

// Command enumerates every slash command the bot understands. Dispatch is
// a total mapping: anything outside the set resolves to CommandUnknown,
// which gets the help text.
type Command string

const (
	CommandStart   Command = "start"
	CommandHelp    Command = "help"
	CommandDiary   Command = "diary"
	CommandWeekly  Command = "weekly"
	CommandUnknown Command = ""
)

// ParseCommand maps a Telegram command string (without the slash) onto
// the enumerated set.
func ParseCommand(s string) Command {
	switch Command(s) {
	case CommandStart, CommandHelp, CommandDiary, CommandWeekly:
		return Command(s)
	default:
		return CommandUnknown
	}
}
