package root

import (
	"fmt"
	"io"

	"github.com/status-system/progression/internal/engine"
)

// renderProgress prints what changed for key between two player snapshots.
func renderProgress(w io.Writer, before, after engine.Player, key engine.AttributeKey) {
	attr := after.Attributes.Get(key)
	if gained := attr.Level - before.Attributes.Get(key).Level; gained > 0 {
		fmt.Fprintf(w, "%s %s is now LV.%d (+%d)\n", Gold.Render("LEVEL UP"), key, attr.Level, gained)
	}
	fmt.Fprintf(w, "%s LV.%d  %s\n", key, attr.Level, Muted.Render(engine.FormatXP(attr.XP, attr.MaxXP)))
	if after.Rank != before.Rank {
		fmt.Fprintf(w, "%s %s\n", Gold.Render("RANK UP"), after.Rank.Name())
	}
}
