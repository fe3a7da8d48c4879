package cli

import "strings"

type command struct {
	names []string
	usage string
	desc  string
	run   func(s *Session, args []string) bool
}

var (
	// commands is listed in help order.
	commands     []command
	commandIndex map[string]int
)

// Populated in init: help reads commands, so a package-level initializer
// would form an initialization cycle.
func init() {
	commands = []command{
		{names: []string{"balance", "b"}, usage: "balance, b", desc: "Show the current balance", run: (*Session).showBalance},
		{names: []string{"deposit", "d"}, usage: "deposit, d <amount>", desc: "Deposit an amount", run: (*Session).deposit},
		{names: []string{"withdraw", "w"}, usage: "withdraw, w <amount>", desc: "Withdraw an amount", run: (*Session).withdraw},
		{names: []string{"owner"}, usage: "owner <name>", desc: "Change the account owner", run: (*Session).setOwner},
		{names: []string{"help", "h", "?"}, usage: "help, h, ?", desc: "Show this help", run: (*Session).help},
		{names: []string{"quit", "exit", "q"}, usage: "quit, exit, q", desc: "End the session", run: (*Session).quit},
	}

	commandIndex = make(map[string]int)
	for i, c := range commands {
		for _, n := range c.names {
			commandIndex[n] = i
		}
	}
}

// lookupCommand resolves a command token case-insensitively.
func lookupCommand(name string) (command, bool) {
	i, ok := commandIndex[strings.ToLower(name)]
	if !ok {
		return command{}, false
	}
	return commands[i], true
}
