package aggregation

// SkillClassifier decides whether a skill's healing is a side effect of dealing damage
// (life steal and similar). Such skills are folded into one "Healing by Damage Dealt" row.
type SkillClassifier interface {
	IsSkillIndirectHealing(skillID uint32, skillName string) bool
}

// SkillClassifierFunc adapts a plain function to SkillClassifier.
type SkillClassifierFunc func(skillID uint32, skillName string) bool

func (f SkillClassifierFunc) IsSkillIndirectHealing(skillID uint32, skillName string) bool {
	return f(skillID, skillName)
}

// NoIndirectHealing classifies every skill as direct healing.
var NoIndirectHealing SkillClassifier = SkillClassifierFunc(func(uint32, string) bool { return false })
