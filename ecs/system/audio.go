package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/sound"
)

// CueObserver is told about every cue handed to the synthesizer.
type CueObserver interface {
	CuePlayed(c sound.Cue)
}

// AudioSystem plays queued cue requests in order and destroys them.
type AudioSystem struct {
	observer CueObserver
}

func NewAudioSystem(observer CueObserver) *AudioSystem {
	return &AudioSystem{observer: observer}
}

// RequestCue queues a cue for the next audio system pass.
func RequestCue(w *ecs.World, c sound.Cue) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.CueRequestComponent.Kind(), &component.CueRequest{Cue: c})
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var cues []sound.Cue
	var requests []ecs.Entity
	ecs.ForEach(w, component.CueRequestComponent.Kind(), func(ent ecs.Entity, req *component.CueRequest) {
		requests = append(requests, ent)
		cues = append(cues, req.Cue)
	})
	for _, ent := range requests {
		ecs.DestroyEntity(w, ent)
	}
	if len(cues) == 0 {
		return
	}

	ent, ok := ecs.First(w, component.CuePlayerComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, ent, component.CuePlayerComponent.Kind())
	if !ok {
		return
	}

	for _, c := range cues {
		player.Synth.Play(c)
		player.Played++
		if a.observer != nil {
			a.observer.CuePlayed(c)
		}
	}
}
