package npc

// Instance is a live enemy spawned for one battle.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID.
	TemplateID string
	// Name is copied from the template for display.
	Name string
	// Description is copied from the template.
	Description string
	// HP is the instance's current hit points, in [0, MaxHP].
	HP int
	// MaxHP is the instance's maximum hit points.
	MaxHP      int
	Attack     int
	Defense    int
	XPReward   int
	GoldReward int
	// Art is shared with the template and must not be modified.
	Art []string
}

// NewInstance creates a live enemy instance from a template.
//
// Precondition: id must be non-empty; tmpl must be non-nil.
// Postcondition: HP equals tmpl.HP equals MaxHP.
func NewInstance(id string, tmpl *Template) *Instance {
	return &Instance{
		ID:          id,
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		HP:          tmpl.HP,
		MaxHP:       tmpl.HP,
		Attack:      tmpl.Attack,
		Defense:     tmpl.Defense,
		XPReward:    tmpl.XPReward,
		GoldReward:  tmpl.GoldReward,
		Art:         tmpl.Art,
	}
}

// IsAlive reports whether the instance has hit points remaining.
func (i *Instance) IsAlive() bool {
	return i.HP > 0
}

// TakeDamage applies an incoming attack reduced by the instance's defense.
//
// Postcondition: Returns the damage dealt, which is at least 1; HP never drops below 0.
func (i *Instance) TakeDamage(amount int) int {
	actual := max(1, amount-i.Defense)
	i.HP = max(0, i.HP-actual)
	return actual
}

// HealthDescription names how hurt the instance looks in the combat panel.
//
// Postcondition: Returns a non-empty string.
func (i *Instance) HealthDescription() string {
	if i.HP <= 0 {
		return "dead"
	}
	pct := float64(i.HP) / float64(i.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.85:
		return "barely scratched"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.40:
		return "moderately wounded"
	case pct >= 0.20:
		return "heavily wounded"
	default:
		return "critically wounded"
	}
}
