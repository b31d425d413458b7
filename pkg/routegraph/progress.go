package routegraph

import "log"

// Progress is the caller-supplied sink for stage progress and diagnostics.
type Progress interface {
	SetAction(action string)
	SetProgress(current, total uint32)
	Info(message string)
	Error(message string)
}

// LogProgress writes progress through the standard logger, reporting at most
// one line per 10% step of an action.
type LogProgress struct {
	lastPercent uint32
}

func NewLogProgress() *LogProgress {
	return &LogProgress{}
}

func (p *LogProgress) SetAction(action string) {
	p.lastPercent = 0
	log.Printf("%s...", action)
}

func (p *LogProgress) SetProgress(current, total uint32) {
	if total == 0 {
		return
	}
	percent := current * 100 / total
	if percent >= p.lastPercent+10 {
		p.lastPercent = percent - percent%10
		log.Printf("%d%% (%d/%d)", percent, current, total)
	}
}

func (p *LogProgress) Info(message string) {
	log.Printf("%s", message)
}

func (p *LogProgress) Error(message string) {
	log.Printf("ERROR: %s", message)
}
