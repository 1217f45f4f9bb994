package agents

const (
	IllnessStress = 0.7
	IllnessDrain  = 0.002
)

// ImmuneResponse drains energy while the being is stressed. Stands in for illness.
func ImmuneResponse(a *Agent) {
	if a.Stress() > IllnessStress {
		a.Energy = clamp01(a.Energy - IllnessDrain)
	}
}
