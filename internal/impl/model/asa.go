package model

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

func init() {
	must(bundle.AllModels.Add(bundle.ModelSpec{
		Meta: bundle.Meta{
			Title: "asa",
			Args: docs.ArgSpecs{
				{Dest: "asa_seed", Type: docs.FieldInt, Description: "seed for this producer instance's PRNG (0 = time-seeded)", Default: 0},
			},
		},
		Constructor: newASA,
	}))
}

var asaActions = []string{"Built", "Teardown", "Deny", "Permit"}
var asaProtos = []string{"TCP", "UDP"}

// asaSeverities mirrors Cisco ASA's 0 (emergency) through 7 (debug) scale;
// firewall connection/deny events typically land in 4-6.
var asaSeverities = []int{4, 5, 6}

type asaModel struct {
	rng    *rand.Rand
	connID int
}

func newASA(attrs map[string]any) (model.Type, error) {
	seed, _ := attrs["seed"].(int)
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}
	return &asaModel{rng: rand.New(rand.NewSource(int64(seed))), connID: 100000}, nil
}

func (m *asaModel) Next(ctx context.Context) (message.Record, error) {
	m.connID++
	action := asaActions[m.rng.Intn(len(asaActions))]
	proto := asaProtos[m.rng.Intn(len(asaProtos))]
	severity := asaSeverities[m.rng.Intn(len(asaSeverities))]
	msgCode := fmt.Sprintf("%%ASA-%d-%06d", severity, 100000+m.rng.Intn(6000))
	return message.Record{
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"severity":    severity,
		"message_code": msgCode,
		"action":      action,
		"protocol":    proto,
		"src_ip":      randomIP(m.rng),
		"src_port":    1024 + m.rng.Intn(64000),
		"dst_ip":      randomIP(m.rng),
		"dst_port":    []int{22, 80, 443, 3389}[m.rng.Intn(4)],
		"conn_id":     m.connID,
		"interface":   []string{"outside", "inside", "dmz"}[m.rng.Intn(3)],
	}, nil
}
