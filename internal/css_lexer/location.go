package css_lexer

import "github.com/csslex/csslex/internal/logger"

// The buffering layer of some hosts reports offsets two code points too large
// on every line after the one where an embedded fragment begins. Positions on
// those lines are shifted back before they are surfaced. Nothing is repaired
// unless the container line was set.
type ScanContext struct {
	ContainerLine    int32
	HasContainerLine bool
}

func (ctx ScanContext) Repair(pos logger.Position) logger.Position {
	if ctx.HasContainerLine && pos.Line > ctx.ContainerLine {
		pos.Offset -= 2
		pos.Column -= 2
	}
	return pos
}

func (ctx ScanContext) RepairLocation(loc logger.Location) logger.Location {
	return logger.Location{
		Start: ctx.Repair(loc.Start),
		End:   ctx.Repair(loc.End),
	}
}
