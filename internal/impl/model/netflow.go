package model

import (
	"context"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/model"
	"github.com/avalon-project/avalon/internal/docs"
	"github.com/avalon-project/avalon/internal/message"
)

func init() {
	must(bundle.AllModels.Add(bundle.ModelSpec{
		Meta: bundle.Meta{
			Title: "netflow",
			Args: docs.ArgSpecs{
				{Dest: "netflow_seed", Type: docs.FieldInt, Description: "seed for this producer instance's PRNG (0 = time-seeded)", Default: 0},
			},
		},
		Constructor: newNetflow,
	}))
}

type netflowModel struct {
	rng    *rand.Rand
	flowID int64
}

func newNetflow(attrs map[string]any) (model.Type, error) {
	seed, _ := attrs["seed"].(int)
	if seed == 0 {
		seed = int(time.Now().UnixNano())
	}
	return &netflowModel{rng: rand.New(rand.NewSource(int64(seed)))}, nil
}

func (m *netflowModel) Next(ctx context.Context) (message.Record, error) {
	m.flowID++
	bytesOut := int64(64 + m.rng.Intn(1<<24))
	packets := 1 + m.rng.Intn(5000)
	return message.Record{
		"timestamp":    time.Now().UTC().Format(time.RFC3339Nano),
		"flow_id":      m.flowID,
		"src_ip":       randomIP(m.rng),
		"dst_ip":       randomIP(m.rng),
		"src_port":     1024 + m.rng.Intn(64000),
		"dst_port":     []int{53, 80, 443, 6443}[m.rng.Intn(4)],
		"protocol":     []string{"TCP", "UDP"}[m.rng.Intn(2)],
		"bytes":        bytesOut,
		"bytes_human":  humanize.Bytes(uint64(bytesOut)),
		"packets":      packets,
		"duration_ms":  m.rng.Intn(30000),
	}, nil
}
