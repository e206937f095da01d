package focus

// ExperiencePerLevel is the experience needed for each level after the first.
const ExperiencePerLevel = 50

// BadgeID names a badge in the fixed catalog.
type BadgeID string

const (
	BadgeBronze BadgeID = "Bronze"
	BadgeSilver BadgeID = "Silver"
	BadgeGold   BadgeID = "Gold"
)

// Badge is unlocked once the streak reaches Threshold.
type Badge struct {
	Threshold int
	ID        BadgeID
}

// BadgeCatalog is ordered by ascending threshold.
var BadgeCatalog = []Badge{
	{Threshold: 3, ID: BadgeBronze},
	{Threshold: 5, ID: BadgeSilver},
	{Threshold: 10, ID: BadgeGold},
}

// LookupBadge returns the catalog entry for id.
func LookupBadge(id BadgeID) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// BadgeForThreshold returns the catalog entry for a threshold.
func BadgeForThreshold(threshold int) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.Threshold == threshold {
			return b, true
		}
	}
	return Badge{}, false
}

// LevelFor returns the level implied by an experience total.
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return 1 + experience/ExperiencePerLevel
}

// Progression is the gamification state: experience, level, streak and badges.
//
// Streak counts natural focus completions since the last full reset. Nothing
// else lowers it: pauses, breaks and abandoned phases leave it alone.
type Progression struct {
	Experience int
	Level      int
	Streak     int
	Badges     []BadgeID // catalog order
}

func NewProgression() Progression {
	return Progression{Level: 1}
}

// AwardExperience adds amount and raises the level to match. Level never drops.
func (p *Progression) AwardExperience(amount int) {
	if amount <= 0 {
		return
	}
	p.Experience += amount
	if lvl := LevelFor(p.Experience); lvl > p.Level {
		p.Level = lvl
	}
}

func (p *Progression) IncrementStreak() {
	p.Streak++
}

// HasBadge reports whether id has been earned.
func (p *Progression) HasBadge(id BadgeID) bool {
	for _, b := range p.Badges {
		if b == id {
			return true
		}
	}
	return false
}

// CheckBadges adds every badge whose threshold the streak has reached and
// returns the newly earned ones in ascending threshold order.
func (p *Progression) CheckBadges() []Badge {
	var earned []Badge
	for _, b := range BadgeCatalog {
		if p.Streak >= b.Threshold && !p.HasBadge(b.ID) {
			earned = append(earned, b)
		}
	}
	if len(earned) > 0 {
		p.Badges = SortBadges(append(p.Badges, badgeIDs(earned)...))
	}
	return earned
}

// Reset clears all progress. Only an explicit data reset calls this.
func (p *Progression) Reset() {
	*p = NewProgression()
}

// normalize repairs a progression loaded from storage: the level is raised to
// at least what the experience implies and unknown badges are dropped.
func (p Progression) normalize() Progression {
	if p.Experience < 0 {
		p.Experience = 0
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	if lvl := LevelFor(p.Experience); p.Level < lvl {
		p.Level = lvl
	}
	var ids []BadgeID
	for _, id := range p.Badges {
		if _, ok := LookupBadge(id); ok {
			ids = append(ids, id)
		}
	}
	p.Badges = SortBadges(ids)
	return p
}

func badgeIDs(bs []Badge) []BadgeID {
	ids := make([]BadgeID, len(bs))
	for i, b := range bs {
		ids[i] = b.ID
	}
	return ids
}

// SortBadges orders ids by catalog position, dropping duplicates and ids
// outside the catalog.
func SortBadges(ids []BadgeID) []BadgeID {
	var out []BadgeID
	for _, b := range BadgeCatalog {
		for _, id := range ids {
			if id == b.ID {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

func (p Progression) copy() Progression {
	if p.Badges != nil {
		p.Badges = append([]BadgeID(nil), p.Badges...)
	}
	return p
}
