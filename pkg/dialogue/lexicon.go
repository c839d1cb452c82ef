package dialogue

// EmotionLabel is one of the closed set of emotions the keyword lexicon can
// detect in a user message. Declaration order is significant: when a message
// matches several emotion categories, the first in [emotionOrder] is primary.
type EmotionLabel string

const (
	EmotionStress     EmotionLabel = "stress"
	EmotionAnxiety    EmotionLabel = "anxiety"
	EmotionSadness    EmotionLabel = "sadness"
	EmotionAnger      EmotionLabel = "anger"
	EmotionLoneliness EmotionLabel = "loneliness"
)

// emotionOrder fixes the scan order for emotion detection.
var emotionOrder = []EmotionLabel{
	EmotionStress,
	EmotionAnxiety,
	EmotionSadness,
	EmotionAnger,
	EmotionLoneliness,
}

var emotionKeywords = map[EmotionLabel][]string{
	EmotionStress:     {"stress", "stressed", "overwhelmed", "pressure", "burden"},
	EmotionAnxiety:    {"anxious", "anxiety", "worried", "nervous", "panic", "fear"},
	EmotionSadness:    {"sad", "depressed", "down", "upset", "crying", "tears"},
	EmotionAnger:      {"angry", "mad", "frustrated", "irritated", "furious"},
	EmotionLoneliness: {"lonely", "alone", "isolated", "disconnected"},
}

// StressorLabel is one of the closed set of stressor categories. As with
// emotions, the first match in [stressorOrder] is the primary stressor.
type StressorLabel string

const (
	StressorExamAnxiety        StressorLabel = "exam_anxiety"
	StressorWorkStress         StressorLabel = "work_stress"
	StressorRelationshipStress StressorLabel = "relationship_stress"
	StressorFamilyStress       StressorLabel = "family_stress"
	StressorGeneralAnxiety     StressorLabel = "general_anxiety"
	StressorDepressionFeelings StressorLabel = "depression_feelings"
)

var stressorOrder = []StressorLabel{
	StressorExamAnxiety,
	StressorWorkStress,
	StressorRelationshipStress,
	StressorFamilyStress,
	StressorGeneralAnxiety,
	StressorDepressionFeelings,
}

var stressorKeywords = map[StressorLabel][]string{
	StressorExamAnxiety:        {"exam", "test", "quiz", "midterm", "final", "study", "studying", "grade", "fail"},
	StressorWorkStress:         {"work", "job", "boss", "colleague", "deadline", "project", "meeting", "workload"},
	StressorRelationshipStress: {"relationship", "partner", "boyfriend", "girlfriend", "dating", "breakup"},
	StressorFamilyStress:       {"family", "parent", "mom", "dad", "mother", "father", "sibling", "brother", "sister"},
	StressorGeneralAnxiety:     {"anxiety", "anxious", "worried", "panic", "fear"},
	StressorDepressionFeelings: {"useless", "worthless", "hopeless", "depressed", "sad", "empty"},
}

// Topic is a life area extracted from past user messages during context
// analysis. Topics inform the conversation summary only; they never select a
// response template directly.
type Topic string

const (
	TopicAcademic      Topic = "academic"
	TopicWork          Topic = "work"
	TopicFamily        Topic = "family"
	TopicRelationships Topic = "relationships"
)

var topicKeywords = map[Topic][]string{
	TopicAcademic:      {"exam", "test", "study", "school", "college"},
	TopicWork:          {"work", "job", "boss", "colleague"},
	TopicFamily:        {"family", "parent", "mom", "dad", "sibling"},
	TopicRelationships: {"friend", "relationship", "partner"},
}

// QuestionKind classifies a follow-up question the bot may ask. Context
// analysis records which kinds were already asked so the fallback rule never
// repeats them within the window.
type QuestionKind string

const (
	QuestionDuration      QuestionKind = "duration"
	QuestionTriggers      QuestionKind = "triggers"
	QuestionCopingHistory QuestionKind = "coping_history"
	QuestionSelfCare      QuestionKind = "self_care"
)

// questionMarkers maps a bot-text phrase marker to the question kind it
// indicates. "what caused" is an alternate phrasing of the triggers question.
var questionMarkers = []struct {
	marker string
	kind   QuestionKind
}{
	{"how long", QuestionDuration},
	{"what triggered", QuestionTriggers},
	{"what caused", QuestionTriggers},
	{"tried any coping", QuestionCopingHistory},
	{"getting enough sleep", QuestionSelfCare},
}

// followUp is a question from the fallback bank together with its kind.
// An empty kind marks a generic question that is never filtered out.
type followUp struct {
	Kind QuestionKind
	Text string
}

var followUpQuestions = []followUp{
	{QuestionDuration, "How long have you been feeling this way?"},
	{QuestionTriggers, "What do you think might have triggered these feelings?"},
	{QuestionCopingHistory, "Have you tried any coping strategies before? What worked or didn't work?"},
	{"", "Is there anything specific you'd like help with right now?"},
	{"", "What would make you feel a little bit better today?"},
	{QuestionSelfCare, "Are you getting enough sleep and taking care of your basic needs?"},
}

// greetingWords trigger the greeting rule by substring presence.
var greetingWords = []string{"hello", "hi", "hey"}

var greetingResponses = []string{
	"Hello! I'm here to support you. How are you feeling today?",
	"Hi there! Thanks for reaching out. What's on your mind?",
	"Welcome! I'm glad you're here. How can I help you today?",
	"Hello! It takes courage to seek support. How are things going for you?",
}

// empathyResponses holds the per-emotion empathy templates. Emotions without
// an entry (anger, loneliness) fall back to [genericResponses].
var empathyResponses = map[EmotionLabel][]string{
	EmotionStress: {
		"Stress can feel overwhelming. What's been weighing on your mind lately?",
		"It sounds like you're carrying a lot right now. Would you like to talk about what's causing this stress?",
		"Feeling stressed is completely normal. What situation is making you feel this way?",
	},
	EmotionAnxiety: {
		"Anxiety can be really challenging. Can you tell me more about what's making you feel anxious?",
		"I hear that you're feeling anxious. What thoughts are going through your mind right now?",
		"Anxiety affects many people. What triggers these feelings for you?",
	},
	EmotionSadness: {
		"I'm sorry you're feeling sad. Sometimes it helps to talk about what's bothering you. What's going on?",
		"Sadness is a natural emotion, but it can be hard to bear. What's been making you feel this way?",
		"It's okay to feel sad. Would you like to share what's been troubling you?",
	},
}

var genericResponses = []string{
	"I'm here to listen without judgment. What would you like to talk about?",
	"Thank you for sharing with me. How can I best support you right now?",
	"It's brave of you to reach out. What's been on your mind lately?",
}

// StrategyKind names a coping-strategy category.
type StrategyKind string

const (
	StrategyBreathing StrategyKind = "breathing"
	StrategyGrounding StrategyKind = "grounding"
	StrategyMovement  StrategyKind = "movement"
	StrategySocial    StrategyKind = "social"
	StrategySelfCare  StrategyKind = "self_care"
)

// strategyOrder fixes the pool order used when no emotion narrows the choice.
var strategyOrder = []StrategyKind{
	StrategyBreathing,
	StrategyGrounding,
	StrategyMovement,
	StrategySocial,
	StrategySelfCare,
}

var copingStrategies = map[StrategyKind][]string{
	StrategyBreathing: {
		"Try the 4-7-8 breathing technique: Inhale for 4 counts, hold for 7, exhale for 8. This can help calm your nervous system.",
		"Focus on your breath. Take slow, deep breaths in through your nose and out through your mouth.",
		"Try box breathing: Breathe in for 4, hold for 4, out for 4, hold for 4. Repeat this cycle.",
	},
	StrategyGrounding: {
		"Try the 5-4-3-2-1 technique: Name 5 things you see, 4 you can touch, 3 you hear, 2 you smell, 1 you taste.",
		"Ground yourself by focusing on your physical sensations. Feel your feet on the floor, your back against the chair.",
		"Look around and name objects in your environment. This can help bring you back to the present moment.",
	},
	StrategyMovement: {
		"Even a 5-minute walk can help shift your mood and energy. Fresh air can be especially helpful.",
		"Try some gentle stretching or yoga poses. Movement can help release tension.",
		"Consider doing some jumping jacks or push-ups to release built-up stress energy.",
	},
	StrategySocial: {
		"Reach out to someone you trust - a friend, family member, or counselor. Connection can be healing.",
		"Consider joining a support group or online community where you can share your experiences.",
		"Sometimes just talking to someone, even briefly, can help you feel less alone.",
	},
	StrategySelfCare: {
		"Take a warm bath or shower. The physical comfort can help soothe emotional distress.",
		"Listen to music that makes you feel calm or uplifted. Music can be a powerful mood regulator.",
		"Try journaling your thoughts and feelings. Writing can help you process what you're experiencing.",
	},
}

var stressorRemedies = map[StressorLabel][]string{
	StressorExamAnxiety: {
		"📚 **Study Strategy:** Break your study material into small, manageable chunks. Study for 25 minutes, then take a 5-minute break (Pomodoro Technique).",
		"🧘 **Before Exam:** Practice deep breathing. Arrive early, avoid discussing the exam with anxious classmates, and remind yourself that you've prepared.",
		"💭 **Reframe Thoughts:** Replace 'I'm going to fail' with 'I've prepared as best I can, and I'll do my best.' One exam doesn't define your worth.",
		"📝 **During Exam:** Read questions carefully, start with easier questions to build confidence, and if you feel overwhelmed, pause and take 3 deep breaths.",
	},
	StressorWorkStress: {
		"📋 **Prioritize Tasks:** Make a list and tackle the most important tasks first. Break large projects into smaller, actionable steps.",
		"⏰ **Time Management:** Use time-blocking to focus on one task at a time. Set boundaries between work and personal time.",
		"🗣️ **Communication:** If workload is overwhelming, have an honest conversation with your supervisor about priorities and deadlines.",
		"🚶 **Micro-breaks:** Take 2-minute breaks every hour to stretch, breathe, or step outside.",
	},
	StressorRelationshipStress: {
		"💬 **Communication:** Use 'I' statements to express feelings without blaming. 'I feel...' instead of 'You always...'",
		"🤝 **Set Boundaries:** It's okay to say no and protect your emotional energy. Healthy relationships respect boundaries.",
		"🔄 **Take Space:** If emotions are high, take a break from the conversation and return when you're calmer.",
		"❤️ **Self-Compassion:** Remember that you can't control others' actions, only your responses. Focus on what you can change.",
	},
	StressorFamilyStress: {
		"🏠 **Create Safe Spaces:** Identify places or times where you can decompress away from family tension.",
		"👂 **Active Listening:** Try to understand family members' perspectives, even if you disagree with their actions.",
		"🚪 **Healthy Distance:** It's okay to limit contact with family members who consistently affect your mental health negatively.",
		"🤝 **Seek Support:** Talk to friends, counselors, or support groups about family dynamics. You're not alone.",
	},
	StressorGeneralAnxiety: {
		"🧘 **Mindfulness:** Practice the 4-7-8 breathing technique when you feel anxiety rising.",
		"📱 **Limit News/Social Media:** Constant negative information can increase anxiety. Set specific times to check news.",
		"🏃 **Physical Activity:** Even 10 minutes of movement can reduce anxiety. Try walking, dancing, or stretching.",
		"💤 **Sleep Hygiene:** Anxiety often worsens with poor sleep. Aim for 7-8 hours and avoid screens before bed.",
	},
	StressorDepressionFeelings: {
		"☀️ **Light Exposure:** Spend time in natural light, especially in the morning. Open curtains or step outside.",
		"🎯 **Small Goals:** Set tiny, achievable goals like 'brush teeth' or 'make bed.' Small wins build momentum.",
		"🤝 **Social Connection:** Reach out to one person, even if it's just a text. Depression thrives in isolation.",
		"🏥 **Professional Help:** If feelings persist for more than 2 weeks, consider talking to a counselor or doctor.",
	},
}

// remedyIntros and remedyClosings wrap a sampled remedy line for each
// stressor category. General anxiety doubles as the default branch when a
// stressor has no dedicated wording.
var remedyIntros = map[StressorLabel]string{
	StressorExamAnxiety:        "Exam anxiety is really common and completely understandable. Here are some strategies that can help:",
	StressorWorkStress:         "Work stress can be overwhelming. Let me share some practical strategies:",
	StressorRelationshipStress: "Relationship challenges can be emotionally draining. Here's something that might help:",
	StressorFamilyStress:       "Family dynamics can be really challenging. Here's a strategy that might help:",
	StressorGeneralAnxiety:     "Anxiety can feel overwhelming, but there are effective ways to manage it:",
	StressorDepressionFeelings: "I hear that you're struggling with these difficult feelings. You're not alone, and these feelings don't define your worth. Here's something that might help:",
}

var remedyClosings = map[StressorLabel]string{
	StressorExamAnxiety:        "Would you like more study strategies or relaxation techniques?",
	StressorWorkStress:         "Would you like more tips for managing workplace stress?",
	StressorRelationshipStress: "Would you like to talk more about what's happening in your relationship?",
	StressorFamilyStress:       "Family stress can be complex. How are you taking care of yourself through this?",
	StressorGeneralAnxiety:     "Would you like to try a quick breathing exercise together?",
	StressorDepressionFeelings: "Remember, if these feelings persist, it's important to reach out to a mental health professional.",
}

// acknowledgments open the continuation rule's response.
var acknowledgments = []string{
	"Thank you for sharing that with me. ",
	"I appreciate you opening up about this. ",
	"That helps me understand better. ",
}

// continuationWords signal that the user is elaborating on a previous answer
// (causal or temporal connectors).
var continuationWords = []string{"because", "since", "started", "began", "ago", "when"}

// crisisPhrases trigger the crisis response by substring presence anywhere in
// the message. The list is deliberately over-inclusive: a false positive costs
// an unnecessary resources message, a false negative is unacceptable.
var crisisPhrases = []string{
	"suicide", "kill myself", "end it all", "can't go on", "want to die",
	"self-harm", "hurt myself", "cutting", "hopeless", "worthless",
	"no point", "better off dead", "end my life",
}

// CrisisResponse is the fixed safety response. It is never randomized:
// a safety message must read identically every time it is shown.
const CrisisResponse = `I'm really concerned about you and want you to know that you're not alone. These feelings can be overwhelming, but there is help available.

🆘 **Immediate Resources:**
- **Crisis Text Line:** Text HOME to 741741
- **National Suicide Prevention Lifeline:** 988
- **Emergency Services:** 911

Please consider reaching out to a mental health professional, trusted friend, or family member right now. Your life has value, and there are people who want to help you through this difficult time.

Would you like me to help you find local mental health resources?`
