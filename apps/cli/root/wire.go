package root

import (
	"github.com/tidenote/tidenote/apps/cli/cmd/seed"
	"github.com/tidenote/tidenote/apps/cli/cmd/token"
)

func init() {
	Root().AddCommand(seed.Command())
	Root().AddCommand(token.Command())
}
