package scene

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-stellations/internal/bio"
	"github.com/litescript/ls-stellations/internal/celestial"
)

// SubjectHue spreads hues evenly over count subjects, in [0, 1).
func SubjectHue(index, count int) float64 {
	if count <= 0 {
		return 0
	}
	return float64(index) / float64(count)
}

// SubjectColors returns the star colour and glow colour for a hue.
func SubjectColors(hue float64) (color, glow colorful.Color) {
	return colorful.Hsl(hue*360, 1, 0.5), colorful.Hsl(hue*360, 1, 0.7)
}

// Build is one batched construction pass. The host drives it by calling
// Step between frames; each Step constructs at most one batch of subjects.
// Starting another build, or disposing the visualisation, makes this one
// stale and every later Step a no-op.
type Build struct {
	ID uuid.UUID

	v        *Visualization
	gen      uint64
	subjects []bio.Subject
	next     int
	batch    int
	done     bool
}

// Generation is the visualisation generation this build belongs to.
func (b *Build) Generation() uint64 { return b.gen }

// Stale reports whether a newer build or a dispose has superseded b.
func (b *Build) Stale() bool { return b.gen != b.v.gen }

// Done reports whether b completed or was abandoned.
func (b *Build) Done() bool { return b.done || b.Stale() }

// Progress returns subjects built so far and the total.
func (b *Build) Progress() (built, total int) {
	return b.next, len(b.subjects)
}

// Step constructs the next batch and reports whether the build is finished.
// A stale build touches nothing and reports done.
func (b *Build) Step() bool {
	if b.Stale() {
		if !b.done {
			b.done = true
			b.v.logger.Debug("build %s abandoned at %d/%d subjects", b.ID, b.next, len(b.subjects))
		}
		return true
	}
	if b.done {
		return true
	}

	end := min(b.next+b.batch, len(b.subjects))
	for i := b.next; i < end; i++ {
		b.v.buildSubject(b.subjects[i], i, len(b.subjects))
	}
	b.next = end

	if b.next >= len(b.subjects) {
		b.done = true
		b.v.phase = PhaseBuilt
		b.v.logger.Info("build %s complete: %d subjects, %d stars, %d arcs",
			b.ID, len(b.subjects), len(b.v.stars), len(b.v.arcs))
	}
	return b.done
}

// Run steps b to completion, checking ctx between batches.
func (b *Build) Run(ctx context.Context) error {
	for !b.Step() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// BeginBuild disposes the current primitives, cancels any build in progress
// and returns a new batched build over subjects. New primitives start
// hidden until the next UpdateVisibility.
func (v *Visualization) BeginBuild(subjects []bio.Subject) *Build {
	v.gen++
	v.clearPrimitives()
	v.phase = PhaseBuilding

	batch := v.profile.BatchSize
	if batch <= 0 {
		batch = len(subjects)
	}

	b := &Build{
		ID:       uuid.New(),
		v:        v,
		gen:      v.gen,
		subjects: subjects,
		batch:    max(batch, 1),
	}
	v.logger.Debug("build %s started: %d subjects in batches of %d", b.ID, len(subjects), b.batch)
	return b
}

// BuildAll builds subjects without yielding, except to check ctx.
func (v *Visualization) BuildAll(ctx context.Context, subjects []bio.Subject) error {
	return v.BeginBuild(subjects).Run(ctx)
}

func (v *Visualization) buildSubject(s bio.Subject, index, count int) {
	color, glow := SubjectColors(SubjectHue(index, count))
	geom := v.cache.StarGeometry(v.profile)
	mat := v.cache.StarMaterial(v.profile, color, glow)

	events := s.SortedEvents()
	positions := make([]celestial.Vec3, len(events))

	for i, e := range events {
		pos := e.Position(v.radius)
		positions[i] = pos

		text := FormatLabel(s.DisplayName(), e.ShortCode, e.Year)
		label := &Label{
			Visibility: hidden(),
			Text:       text,
			Position:   pos.Scale(LabelScale),
			Sprite:     v.labels.Render(text, v.theme),
		}
		star := &Star{
			Visibility: hidden(),
			SubjectID:  s.ID,
			Nickname:   s.DisplayName(),
			Category:   s.Category,
			Year:       e.Year,
			Info:       e.Info,
			ShortCode:  e.ShortCode,
			Position:   pos,
			Color:      color,
			Geometry:   geom,
			Material:   mat,
			Phase:      v.rng.Float64() * 2 * math.Pi,
			Label:      label,
		}

		v.stars = append(v.stars, star)
		v.labelList = append(v.labelList, label)
		v.starNode.Items = append(v.starNode.Items, star)
		v.labelNode.Items = append(v.labelNode.Items, label)
	}

	if len(events) < 2 {
		return
	}
	arcMat := v.cache.ArcMaterial(v.profile, color)
	arcRadius := v.radius * ShellScale
	for i := 1; i < len(events); i++ {
		arc := &Arc{
			Visibility: hidden(),
			SubjectID:  s.ID,
			StartYear:  events[i-1].Year,
			EndYear:    events[i].Year,
			Points:     celestial.ArcPoints(positions[i-1], positions[i], arcRadius, v.profile.ArcSegments),
			Color:      color,
			Material:   arcMat,
		}
		v.arcs = append(v.arcs, arc)
		v.arcNode.Items = append(v.arcNode.Items, arc)
	}
}
