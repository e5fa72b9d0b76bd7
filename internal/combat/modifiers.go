package combat

// Damage modifier tags. An intent tag X is halved by a target carrying
// "resist_X" and amplified by "vuln_X". TagCanCrit marks an intent as
// crit-eligible; the pipeline rolls the crit and passes the outcome in.
const (
	TagCanCrit     = "can_crit"
	resistPrefix   = "resist_"
	vulnPrefix     = "vuln_"
	critMultiplier = 2.0
	resistFactor   = 0.5
	vulnFactor     = 1.5
)

// CritChance is the crit probability for crit-eligible intents.
const CritChance = 0.1

// EffectiveDamage combines the base amount with modifiers keyed by the
// intent and target tags. Pure function: no side effects, no state, so
// the balance math is testable in isolation from the pipeline.
func EffectiveDamage(base float64, intentTags []string, hasTargetTag func(string) bool, isCrit bool) float64 {
	dmg := base
	if isCrit {
		dmg *= critMultiplier
	}
	for _, tag := range intentTags {
		if tag == TagCanCrit {
			continue
		}
		if hasTargetTag(resistPrefix + tag) {
			dmg *= resistFactor
		}
		if hasTargetTag(vulnPrefix + tag) {
			dmg *= vulnFactor
		}
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}
