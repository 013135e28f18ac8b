// internal/adapter/airport.go
package adapter

import (
	"bufio"
	"context"
	"regexp"
	"strings"
)

// NetworksetupPath joins networks on macOS.
const NetworksetupPath = "networksetup"

// Airport implements Adapter with the macOS airport and networksetup helpers.
type Airport struct {
	Path      string // airport binary
	Interface string
	Runner    Runner
}

func (a *Airport) ReadActive(ctx context.Context) (Snapshot, error) {
	out, err := a.Runner.Run(ctx, a.Path, "-I")
	if err != nil {
		return Snapshot{}, &ReadError{Op: "read_active", Err: err}
	}
	return ParseAirportInfo(string(out))
}

func (a *Airport) Scan(ctx context.Context) ([]VisibleNetwork, error) {
	out, err := a.Runner.Run(ctx, a.Path, "-s")
	if err != nil {
		return nil, &ReadError{Op: "scan", Err: err}
	}
	return ParseAirportScan(string(out)), nil
}

func (a *Airport) Connect(ctx context.Context, ssid, password string) (bool, error) {
	out, err := a.Runner.Run(ctx, NetworksetupPath, "-setairportnetwork", a.Interface, ssid, password)
	msg := strings.TrimSpace(string(out))
	if err != nil {
		return false, &ConnectError{SSID: ssid, Output: msg, Err: err}
	}

	// networksetup exits 0 on failure and only prints a reason.
	switch {
	case msg == "":
		return true, nil
	case strings.Contains(msg, "Could not find network"):
		return false, &ConnectError{SSID: ssid, Output: msg}
	default:
		return false, nil
	}
}

// ParseAirportInfo parses `airport -I` output.
// SSID, agrCtlRSSI and channel are mandatory; BSSID is optional.
// Values are kept as text.
func ParseAirportInfo(text string) (Snapshot, error) {
	fields := map[string]string{}

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		// split on the first ": " only, BSSID values contain colons
		i := strings.Index(line, ": ")
		if i < 0 {
			// "SSID:" with nothing after it
			if k, ok := strings.CutSuffix(strings.TrimSpace(line), ":"); ok {
				fields[k] = ""
			}
			continue
		}
		fields[strings.TrimSpace(line[:i])] = strings.TrimSpace(line[i+2:])
	}

	const op = "read_active"

	rssi, ok := fields["agrCtlRSSI"]
	if !ok || rssi == "" {
		return Snapshot{}, malformed(op, "agrCtlRSSI")
	}
	ssid, ok := fields["SSID"]
	if !ok || ssid == "" {
		return Snapshot{}, malformed(op, "SSID")
	}
	ch, ok := fields["channel"]
	if !ok || ch == "" {
		return Snapshot{}, malformed(op, "channel")
	}

	channels := strings.Split(ch, ",")
	for i := range channels {
		channels[i] = strings.TrimSpace(channels[i])
	}

	s := Snapshot{
		SSID:        ssid,
		BSSID:       fields["BSSID"],
		Channel:     channels[0],
		Channels:    channels,
		SignalLevel: rssi,
		Noise:       fields["agrCtlNoise"],
		Security:    fields["link auth"],
		State:       fields["state"],
	}
	s.Associated = s.State == "" || s.State == "running"

	return s, nil
}

var macRe = regexp.MustCompile(`(?i)\b[0-9a-f]{2}(?::[0-9a-f]{2}){5}\b`)

// ParseAirportScan parses `airport -s` output.
// SSIDs are right-aligned and may contain spaces, so rows are anchored on the
// BSSID column. Rows without a BSSID are skipped.
func ParseAirportScan(text string) []VisibleNetwork {
	var out []VisibleNetwork

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()

		loc := macRe.FindStringIndex(line)
		if loc == nil {
			continue
		}

		rest := strings.Fields(line[loc[1]:])
		if len(rest) < 2 {
			continue
		}

		n := VisibleNetwork{
			SSID:        strings.TrimSpace(line[:loc[0]]),
			MAC:         line[loc[0]:loc[1]],
			SignalLevel: rest[0],
			Channel:     strings.SplitN(rest[1], ",", 2)[0],
		}
		// RSSI CHANNEL HT CC SECURITY...
		if len(rest) > 4 {
			n.Security = strings.Join(rest[4:], " ")
		}
		out = append(out, n)
	}

	return out
}
