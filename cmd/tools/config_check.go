// Command config_check prints the relay configuration the process would
// start with, flagging missing or suspicious values. Run it before a
// deploy; secrets are masked.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
)

type check struct {
	name     string
	required bool
	secret   bool
	fallback string
}

var checks = []check{
	{name: "TELEGRAM_TOKEN", required: true, secret: true},
	{name: "API_KEY", required: true, secret: true},
	{name: "MODEL", required: true},
	{name: "PROVIDER", fallback: "anthropic"},
	{name: "API_URL", fallback: "(provider default)"},
	{name: "ALLOWED_USERS", fallback: "(everyone)"},
	{name: "ALLOWED_GROUPS", fallback: "(every group)"},
	{name: "BLOCKED_WORDS", fallback: "(filter disabled)"},
	{name: "MAX_MESSAGES_PER_HOUR", fallback: "50"},
	{name: "COOLDOWN_SECONDS", fallback: "5"},
	{name: "RESET_COUNTS_AGAINST_QUOTA", fallback: "true"},
	{name: "MAX_TOKENS", fallback: "1024"},
	{name: "TEMPERATURE", fallback: "0.7"},
	{name: "REQUEST_TIMEOUT", fallback: "30s"},
	{name: "MAX_ATTEMPTS", fallback: "3"},
	{name: "MAX_RESPONSE_LENGTH", fallback: "4000"},
	{name: "SYSTEM_PROMPT", fallback: "(built-in)"},
	{name: "JANITOR_INTERVAL", fallback: "10m"},
	{name: "LOG_LEVEL", fallback: "INFO"},
}

func main() {
	_ = godotenv.Load()

	fmt.Println("🔎 chat-relay configuration check")

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Variable", "Value", "Verdict"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	failed := false
	for _, c := range checks {
		value, set := os.LookupEnv(c.name)
		display, verdict := render(c, value, set)
		if c.required && !set {
			failed = true
		}
		table.Append([]string{c.name, display, verdict})
	}
	table.Render()

	if failed {
		fmt.Println(color.Red.Render("Configuration incomplete, the relay would refuse to start."))
		os.Exit(1)
	}
	fmt.Println(color.Green.Render("Configuration looks complete."))
}

func render(c check, value string, set bool) (string, string) {
	if !set || strings.TrimSpace(value) == "" {
		if c.required {
			return "", color.Red.Render("MISSING")
		}
		return c.fallback, color.Yellow.Render("default")
	}
	if c.secret {
		return mask(value), color.Green.Render("set")
	}
	return value, color.Green.Render("set")
}

func mask(value string) string {
	if len(value) <= 8 {
		return "********"
	}
	return value[:4] + "..." + value[len(value)-4:]
}
