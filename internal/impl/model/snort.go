// Package model hosts the built-in Model extensions: concrete record
// generators plugged into the core through the model.Type boundary
// contract (SPEC_FULL.md §1 "out of scope").
package model

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gofrs/uuid"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

func init() {
	must(bundle.AllModels.Add(bundle.ModelSpec{
		Meta: bundle.Meta{
			Title: "snort",
			Args: docs.ArgSpecs{
				{Dest: "snort_seed", Type: docs.FieldInt, Description: "seed for this producer instance's PRNG (0 = time-seeded)", Default: 0},
				{Dest: "snort_sensor", Type: docs.FieldString, Description: "sensor hostname attached to each alert", Default: "sensor-0"},
			},
		},
		Constructor: newSnort,
	}))
}

var snortClassifications = []string{
	"Attempted Administrator Privilege Gain",
	"Web Application Attack",
	"Potentially Bad Traffic",
	"Detection of a Network Scan",
	"Attempted Denial of Service",
}

var snortMessages = []string{
	"SQL Injection Attempt",
	"ET SCAN Potential SSH Scan",
	"GPL SCAN rpcinfo query",
	"ET POLICY curl User-Agent",
	"ET TROJAN Generic gzip_deflate response",
}

type snortModel struct {
	rng    *rand.Rand
	sensor string
	sidSeq int
}

func newSnort(attrs map[string]any) (model.Type, error) {
	seed, _ := attrs["seed"].(int)
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}
	sensor, _ := attrs["sensor"].(string)
	if sensor == "" {
		sensor = "sensor-0"
	}
	return &snortModel{rng: rand.New(rand.NewSource(int64(seed))), sensor: sensor, sidSeq: 1000000}, nil
}

func (m *snortModel) Next(ctx context.Context) (message.Record, error) {
	m.sidSeq++
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("snort: generate event id: %w", err)
	}
	return message.Record{
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
		"event_id":       id.String(),
		"sensor":         m.sensor,
		"sid":            m.sidSeq,
		"priority":       1 + m.rng.Intn(3),
		"classification": snortClassifications[m.rng.Intn(len(snortClassifications))],
		"msg":            snortMessages[m.rng.Intn(len(snortMessages))],
		"src_ip":         randomIP(m.rng),
		"dst_ip":         randomIP(m.rng),
		"src_port":       1024 + m.rng.Intn(64000),
		"dst_port":       []int{22, 80, 443, 3306, 8080}[m.rng.Intn(5)],
		"proto":          []string{"TCP", "UDP", "ICMP"}[m.rng.Intn(3)],
	}, nil
}

func randomIP(rng *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", 10+rng.Intn(200), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
