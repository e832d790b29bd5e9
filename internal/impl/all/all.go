// Package all blank-imports every built-in extension package so their
// init() registration side effects run from one import in cmd/avalon.
package all

import (
	_ "github.com/avalon-project/avalon/internal/impl/format"
	_ "github.com/avalon-project/avalon/internal/impl/generic"
	_ "github.com/avalon-project/avalon/internal/impl/mapping"
	_ "github.com/avalon-project/avalon/internal/impl/medium"
	_ "github.com/avalon-project/avalon/internal/impl/model"
)
