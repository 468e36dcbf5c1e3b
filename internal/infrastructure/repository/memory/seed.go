package memory

import "github.com/riskibarqy/courtside/internal/domain/session"

// SeedCourts and SeedPlayers describe a demo club night used in
// development and tests.
func SeedCourts() []string {
	return []string{"Court 1", "Court 2"}
}

func SeedPlayers() []session.NewPlayer {
	return []session.NewPlayer{
		{Name: "Arun", Skill: session.SkillAdvanced},
		{Name: "Bee", Skill: session.SkillIntermediate},
		{Name: "Chai", Skill: session.SkillBeginner},
		{Name: "Dao", Skill: session.SkillIntermediate},
		{Name: "Ek", Skill: session.SkillAdvanced},
		{Name: "Fon", Skill: session.SkillBeginner},
		{Name: "Gun", Skill: session.SkillIntermediate},
		{Name: "Hom", Skill: session.SkillBeginner},
		{Name: "Ice", Skill: session.SkillAdvanced},
		{Name: "Jay", Skill: session.SkillIntermediate},
	}
}

// NewSeededState returns a configured state holding the demo roster.
func NewSeededState() (*session.State, error) {
	st := session.NewState()
	if err := st.Setup(SeedCourts(), SeedPlayers()); err != nil {
		return nil, err
	}
	return st, nil
}
