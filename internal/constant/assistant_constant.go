package constant

// Fixed user-facing Burmese strings. These are spoken as well as displayed,
// so wording changes must stay short and pronounceable.
const (
	// AnswerNoData is returned when the knowledge base could not be loaded.
	AnswerNoData = "ဒေတာ မရရှိပါ။ API ကို စစ်ဆေးပါ။"

	// AnswerNoMatch is the deterministic fallback when no category intersects
	// the query.
	AnswerNoMatch = "ဒီမေးခွန်းအတွက် အချက်အလက် မတွေ့ရှိပါ။ Admin ကို ဆက်သွယ်ပေးပါမည်။"

	// AnswerDispatchFailure is the voiced apology for a failed answer
	// pipeline round trip. The session remains usable afterwards.
	AnswerDispatchFailure = "ဆာဗာ ချိတ်ဆက်မှု အဆင်မပြေပါ။ ခေတ္တစောင့်ပေးပါ။"

	// AnswerRegionRestricted is spoken when the model provider rejects the
	// request for the caller's location. Distinct from the generic failure
	// message and never retried automatically.
	AnswerRegionRestricted = "ဤဝန်ဆောင်မှုကို သင့်ဒေသတွင် အသုံးပြု၍ မရသေးပါ။"

	// AnswerModelEmpty covers a 2xx model response with no usable text.
	AnswerModelEmpty = "အဖြေရှာမရခဲ့ပါ။"

	// GreetingMessage is used by the synthesizer self-test endpoint.
	GreetingMessage = "မင်္ဂလာပါ၊ ကျွန်မက AI လက်ထောက် ဖြစ်ပါတယ်။ ဘာများ ကူညီပေးရမလဲရှင်။"
)

// Answer pipeline prompt scaffolding.
const (
	// AnswerSystemInstruction grounds the model strictly on the supplied
	// context block and pins the response language to Burmese.
	AnswerSystemInstruction = `You are an expert assistant for a service provider.
Answer the user's question in Burmese based ONLY on the following context about services and categories.
If the context does not contain the answer, say EXACTLY in Burmese:

"` + AnswerNoMatch + `"

RULES:
- Answer in Burmese
- No external knowledge
- Short and clear`

	// AnswerSystemInstructionNoContext is used when no grounding context
	// matched but the pipeline is configured to always consult the model.
	AnswerSystemInstructionNoContext = "You are a helpful assistant speaking Burmese. Respond only in Burmese. Keep answers short and clear."
)

// Interaction event topic for the in-process pub/sub bus.
const AssistantInteractionTopic = "ASSISTANT_INTERACTION"
