// internal/adapter/nmcli.go
package adapter

import (
	"context"
	"strconv"
	"strings"
)

// nmcliFields is the terse column order requested from nmcli.
const nmcliFields = "ACTIVE,SSID,BSSID,SIGNAL,CHAN,SECURITY"

// NMCLI implements Adapter with NetworkManager's nmcli.
type NMCLI struct {
	Path      string
	Interface string
	Runner    Runner
}

func (n *NMCLI) list(ctx context.Context, op string, rescan string) ([]nmcliRow, error) {
	out, err := n.Runner.Run(ctx, n.Path,
		"-t", "-f", nmcliFields,
		"device", "wifi", "list",
		"ifname", n.Interface,
		"--rescan", rescan,
	)
	if err != nil {
		return nil, &ReadError{Op: op, Err: err}
	}
	return parseNMCLIRows(op, string(out))
}

func (n *NMCLI) Scan(ctx context.Context) ([]VisibleNetwork, error) {
	rows, err := n.list(ctx, "scan", "auto")
	if err != nil {
		return nil, err
	}

	out := make([]VisibleNetwork, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.network)
	}
	return out, nil
}

func (n *NMCLI) ReadActive(ctx context.Context) (Snapshot, error) {
	rows, err := n.list(ctx, "read_active", "no")
	if err != nil {
		return Snapshot{}, err
	}
	return activeFromRows(rows)
}

func (n *NMCLI) Connect(ctx context.Context, ssid, password string) (bool, error) {
	out, err := n.Runner.Run(ctx, n.Path,
		"device", "wifi", "connect", ssid,
		"password", password,
		"ifname", n.Interface,
	)
	if err == nil {
		return true, nil
	}

	msg := strings.TrimSpace(string(out))
	if strings.Contains(msg, "Secrets were required") ||
		strings.Contains(msg, "802-11-wireless-security.psk") {
		return false, nil
	}
	return false, &ConnectError{SSID: ssid, Output: msg, Err: err}
}

type nmcliRow struct {
	active  bool
	network VisibleNetwork
}

// ParseNMCLIScan parses `nmcli -t -f ACTIVE,SSID,BSSID,SIGNAL,CHAN,SECURITY device wifi list`.
func ParseNMCLIScan(text string) ([]VisibleNetwork, error) {
	rows, err := parseNMCLIRows("scan", text)
	if err != nil {
		return nil, err
	}
	out := make([]VisibleNetwork, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.network)
	}
	return out, nil
}

// ParseNMCLIActive extracts the active row of the same listing.
func ParseNMCLIActive(text string) (Snapshot, error) {
	rows, err := parseNMCLIRows("read_active", text)
	if err != nil {
		return Snapshot{}, err
	}
	return activeFromRows(rows)
}

func activeFromRows(rows []nmcliRow) (Snapshot, error) {
	for _, r := range rows {
		if !r.active {
			continue
		}
		if r.network.SSID == "" {
			return Snapshot{}, malformed("read_active", "SSID")
		}
		return Snapshot{
			SSID:        r.network.SSID,
			BSSID:       r.network.MAC,
			Channel:     r.network.Channel,
			Channels:    []string{r.network.Channel},
			SignalLevel: r.network.SignalLevel,
			Security:    r.network.Security,
			State:       "activated",
			Associated:  true,
		}, nil
	}
	return Snapshot{}, malformed("read_active", "ACTIVE")
}

// parseNMCLIRows keeps well-formed rows in listing order. A broken row is
// skipped unless it is the active one, which is a malformed reading.
func parseNMCLIRows(op, text string) ([]nmcliRow, error) {
	var rows []nmcliRow

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := splitTerse(line)
		active := cols[0] == "yes"

		if field := badColumn(cols); field != "" {
			if active {
				return nil, malformed(op, field)
			}
			continue
		}

		rows = append(rows, nmcliRow{
			active: active,
			network: VisibleNetwork{
				SSID:        cols[1],
				MAC:         cols[2],
				SignalLevel: qualityToDBm(cols[3]),
				Channel:     cols[4],
				Security:    cols[5],
			},
		})
	}

	return rows, nil
}

// badColumn names the first unusable column of a row, "" when it is usable.
func badColumn(cols []string) string {
	switch {
	case len(cols) != 6:
		return "columns"
	case strings.TrimSpace(cols[3]) == "":
		return "SIGNAL"
	case cols[4] == "":
		return "CHAN"
	}
	return ""
}

// qualityToDBm maps nmcli's 0..100 quality onto dBm (NetworkManager's own
// inverse mapping). Non-numeric input is passed through for the strict
// consumer to reject.
func qualityToDBm(q string) string {
	v, err := strconv.Atoi(strings.TrimSpace(q))
	if err != nil {
		return q
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return strconv.Itoa(v/2 - 100)
}

// splitTerse splits one nmcli -t line on ':' honouring '\:' and '\\'.
func splitTerse(line string) []string {
	var (
		cols []string
		cur  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			cols = append(cols, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cols, cur.String())
}
