package model

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/influxdata/go-syslog/v3/rfc5424"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

func init() {
	must(bundle.AllModels.Add(bundle.ModelSpec{
		Meta: bundle.Meta{
			Title: "syslog",
			Args: docs.ArgSpecs{
				{Dest: "syslog_seed", Type: docs.FieldInt, Description: "seed for this producer instance's PRNG (0 = time-seeded)", Default: 0},
				{Dest: "syslog_app", Type: docs.FieldString, Description: "APP-NAME field emitted on every message", Default: "avalon"},
			},
		},
		Constructor: newSyslog,
	}))
}

// syslogFacilities/severities follow RFC 5424's PRI field table.
var syslogFacilities = []int{1, 3, 4, 16, 23}
var syslogSeverities = []int{2, 3, 4, 5, 6}

var syslogMessages = []string{
	"authentication failure",
	"connection reset by peer",
	"disk usage above threshold",
	"service restarted",
	"configuration reloaded",
}

type syslogModel struct {
	rng    *rand.Rand
	app    string
	procID int
	parser rfc5424.Machine
}

func newSyslog(attrs map[string]any) (model.Type, error) {
	seed, _ := attrs["seed"].(int)
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}
	app, _ := attrs["app"].(string)
	if app == "" {
		app = "avalon"
	}
	return &syslogModel{
		rng:    rand.New(rand.NewSource(int64(seed))),
		app:    app,
		procID: 1000 + rand.Intn(30000),
		parser: rfc5424.NewParser(),
	}, nil
}

// Next assembles a wire-format RFC 5424 line and round-trips it through
// rfc5424.Machine, so every emitted record is guaranteed to be a syslog
// message a real collector would accept, not just a map that looks like one.
func (m *syslogModel) Next(ctx context.Context) (message.Record, error) {
	facility := syslogFacilities[m.rng.Intn(len(syslogFacilities))]
	severity := syslogSeverities[m.rng.Intn(len(syslogSeverities))]
	pri := facility*8 + severity
	ts := time.Now().UTC()
	msgID := fmt.Sprintf("MSG%04d", m.rng.Intn(9999))
	body := syslogMessages[m.rng.Intn(len(syslogMessages))]

	// RFC 5424 timestamps carry at most six fractional-second digits.
	line := fmt.Sprintf("<%d>1 %s host-01 %s %d %s - %s",
		pri, ts.Format("2006-01-02T15:04:05.999999Z07:00"), m.app, m.procID, msgID, body)

	parsed, err := m.parser.Parse([]byte(line))
	if err != nil {
		return nil, fmt.Errorf("syslog: generated line failed to parse: %w", err)
	}

	rec := message.Record{
		"timestamp": ts.Format(time.RFC3339Nano),
		"pri":       pri,
		"facility":  facility,
		"severity":  severity,
		"hostname":  "host-01",
		"app_name":  m.app,
		"proc_id":   m.procID,
		"msg_id":    msgID,
		"message":   body,
	}
	if hn := parsed.Hostname(); hn != nil {
		rec["hostname"] = *hn
	}
	if an := parsed.Appname(); an != nil {
		rec["app_name"] = *an
	}
	return rec, nil
}
