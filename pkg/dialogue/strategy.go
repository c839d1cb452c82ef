package dialogue

// strategyPools narrows the coping-strategy kinds offered per emotion.
// Emotions without an entry draw from every pool.
var strategyPools = map[EmotionLabel][]StrategyKind{
	EmotionStress:  {StrategyBreathing, StrategyGrounding, StrategyMovement},
	EmotionAnxiety: {StrategyBreathing, StrategyGrounding, StrategyMovement},
	EmotionSadness: {StrategySelfCare, StrategySocial, StrategyMovement},
}

// PickStrategy returns one coping-strategy text suited to the emotion. The
// pool is chosen per [strategyPools], a kind is sampled from the pool, and a
// strategy text is sampled from that kind's table. An unknown or empty
// emotion falls back to the full set of pools.
func (e *Engine) PickStrategy(emotion EmotionLabel) string {
	pool, ok := strategyPools[emotion]
	if !ok {
		pool = strategyOrder
	}
	kind := pool[e.intN(len(pool))]
	return e.pick(copingStrategies[kind])
}
