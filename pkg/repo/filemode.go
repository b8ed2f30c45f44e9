package repo

import (
	"os"

	"github.com/odvcencio/gitlite/pkg/object"
)

func filePermFromMode(mode uint32) os.FileMode {
	if mode == object.ModeExecutable {
		return 0o755
	}
	return 0o644
}
