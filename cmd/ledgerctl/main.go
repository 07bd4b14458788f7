// ledgerctl queries a running accumulator-ledger-service and renders the
// ledger status and ticket history as terminal tables.
//
// Usage:
//
//	ledgerctl [-addr http://localhost:8082] status
//	ledgerctl [-addr http://localhost:8082] history [-limit 20]
//	ledgerctl [-addr http://localhost:8082] generate
//	ledgerctl [-addr http://localhost:8082] resolve [-date YYYY-MM-DD]
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/cypherlabdev/accumulator-ledger-service/internal/ledger"
	"github.com/cypherlabdev/accumulator-ledger-service/internal/models"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("ACCA_LEDGER_ADDR", "http://localhost:8082"), "service base URL")
	limit := flag.Int("limit", 20, "history: number of tickets")
	date := flag.String("date", "", "resolve: settlement date (YYYY-MM-DD, default yesterday)")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}

	var err error
	switch flag.Arg(0) {
	case "status", "":
		err = printStatus(client, *addr)
	case "history":
		err = printHistory(client, *addr, *limit)
	case "generate":
		err = generate(client, *addr)
	case "resolve":
		err = resolve(client, *addr, *date)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(client *http.Client, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printStatus(client *http.Client, addr string) error {
	var status ledger.Status
	if err := getJSON(client, addr+"/api/v1/status", &status); err != nil {
		return err
	}

	fmt.Printf("Bankroll: %s   Total P&L: %s   Streak: %+d\n",
		status.Bankroll.StringFixed(2), status.TotalPnL.StringFixed(2), status.Streak)
	fmt.Printf("Win rate 2x: %.1f%%   Win rate 3x: %.1f%%   Tickets: %d\n\n",
		status.WinRate2x, status.WinRate3x, status.TotalTickets)

	if len(status.TodayTickets) == 0 {
		fmt.Println("No tickets generated today.")
		return nil
	}
	renderTickets("Today's tickets", status.TodayTickets)
	return nil
}

func printHistory(client *http.Client, addr string, limit int) error {
	var resp struct {
		Tickets []models.Ticket `json:"tickets"`
	}
	if err := getJSON(client, fmt.Sprintf("%s/api/v1/history?limit=%d", addr, limit), &resp); err != nil {
		return err
	}
	if len(resp.Tickets) == 0 {
		fmt.Println("No tickets in history.")
		return nil
	}
	renderTickets(fmt.Sprintf("Last %d tickets", len(resp.Tickets)), resp.Tickets)
	return nil
}

func generate(client *http.Client, addr string) error {
	var pair models.TicketPair
	if err := postJSON(client, addr+"/api/v1/tickets/generate", struct{}{}, &pair); err != nil {
		return err
	}
	var tickets []models.Ticket
	if pair.Ticket2x != nil {
		tickets = append(tickets, *pair.Ticket2x)
	}
	if pair.Ticket3x != nil {
		tickets = append(tickets, *pair.Ticket3x)
	}
	renderTickets("Generated tickets", tickets)
	return nil
}

func resolve(client *http.Client, addr string, date string) error {
	var summary models.SettlementSummary
	body := map[string]string{}
	if date != "" {
		body["date"] = date
	}
	if err := postJSON(client, addr+"/api/v1/tickets/resolve", body, &summary); err != nil {
		return err
	}

	fmt.Printf("Settlement for %s — bankroll %s, streak %+d\n\n",
		summary.Date, summary.Bankroll.StringFixed(2), summary.Streak)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Ticket", "Type", "Status", "W/L/V", "PnL")
	for _, r := range summary.Results {
		table.Append(
			r.TicketID,
			string(r.Type),
			string(r.Status),
			fmt.Sprintf("%d/%d/%d", r.LegsWon, r.LegsLost, r.LegsVoid),
			r.PnL.StringFixed(2),
		)
	}
	table.Render()
	return nil
}

func renderTickets(title string, tickets []models.Ticket) {
	fmt.Println(title)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Type", "Date", "Legs", "Odds", "Stake", "Return", "Status", "PnL")
	for i := range tickets {
		t := &tickets[i]
		pnl := "-"
		if t.Result != nil {
			pnl = t.Result.PnL.StringFixed(2)
		}
		table.Append(
			t.ID,
			string(t.Type),
			t.Date,
			fmt.Sprintf("%d", len(t.Legs)),
			t.DisplayOdds().StringFixed(2),
			t.Stake.StringFixed(2),
			t.PotentialReturn.StringFixed(2),
			string(t.Status),
			pnl,
		)
	}
	table.Render()

	for i := range tickets {
		t := &tickets[i]
		fmt.Printf("\n%s legs:\n", t.ID)
		for _, leg := range t.Legs {
			line := ""
			if !leg.GoalLine.IsZero() {
				line = " " + leg.GoalLine.String()
			}
			result := ""
			if leg.Result != "" {
				result = fmt.Sprintf(" [%s]", leg.Result)
			}
			fmt.Printf("  %s vs %s — %s%s @ %s (conf %d)%s\n",
				leg.HomeTeam, leg.AwayTeam, leg.Type, line,
				leg.Odds.StringFixed(2), leg.Confidence, result)
		}
	}
}
