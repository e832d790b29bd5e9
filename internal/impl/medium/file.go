package medium

import (
	"context"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "file",
			Args: docs.ArgSpecs{
				{Dest: "file_name", Type: docs.FieldString, Description: "output file path", Required: true},
				{Dest: "file_max_size_mb", Type: docs.FieldInt, Description: "rotate after the file reaches this size in megabytes", Default: 100},
				{Dest: "file_max_backups", Type: docs.FieldInt, Description: "number of rotated files to retain", Default: 3},
			},
		},
		AutoSelectFlag: "file_name",
		Constructor:    newFile,
	}))
}

type fileMedium struct {
	logger *lumberjack.Logger
}

func newFile(attrs map[string]any) (medium.Type, error) {
	name, _ := attrs["name"].(string)
	if name == "" {
		name = "avalon.log"
	}
	maxSize, _ := attrs["max_size_mb"].(int)
	if maxSize == 0 {
		maxSize = 100
	}
	maxBackups, _ := attrs["max_backups"].(int)
	return &fileMedium{logger: &lumberjack.Logger{
		Filename:   name,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
	}}, nil
}

func (m *fileMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	if _, err := m.logger.Write(b.Payload); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *fileMedium) Close(ctx context.Context) error {
	return m.logger.Close()
}
