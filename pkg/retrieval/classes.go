package retrieval

// TopicClass is a fixed semantic bucket used by the keyword-class matching
// policy. Triggers are terms a user query may contain (Burmese plus
// English/transliterated forms); Keywords are terms that must appear in a
// category's keyword string for the class to fire against that category.
type TopicClass struct {
	Name     string
	Triggers []string
	Keywords []string
}

// topicClasses is evaluated in declaration order; within a category the first
// class that fires wins, and across categories the first category wins.
// The terms are fixed and not tuned at runtime.
var topicClasses = []TopicClass{
	{
		Name:     "website",
		Triggers: []string{"web", "website", "ဝက်ဘ်", "ဝက်ဘ်ဆိုက်"},
		Keywords: []string{"website", "ဝက်ဘ်"},
	},
	{
		Name:     "software",
		Triggers: []string{"software", "erp", "pos", "ဆော့ဖ်ဝဲ", "လစာ"},
		Keywords: []string{"software", "ဆော့ဖ်"},
	},
	{
		Name:     "mobile",
		Triggers: []string{"mobile", "app", "android", "ios", "မိုဘိုင်း"},
		Keywords: []string{"mobile", "မိုဘိုင်း"},
	},
	{
		Name:     "design",
		Triggers: []string{"design", "ui", "ux", "ဒီဇိုင်း"},
		Keywords: []string{"design", "ဒီဇိုင်း"},
	},
	{
		Name:     "consultation",
		Triggers: []string{"consult", "it", "အကြံ"},
		Keywords: []string{"consult", "အကြံ"},
	},
}
