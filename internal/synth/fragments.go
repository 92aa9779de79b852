package synth

import "github.com/your-org/police-portal-assistant/internal/lang"

// fragmentSet carries every fixed response fragment for one language.
// A new fragment means a new field, so a language missing a translation
// shows up at the declaration below rather than as an empty string at
// render time.
type fragmentSet struct {
	greeting         string
	fileReportPrompt string
	procedureIntro   string
	documentsIntro   string
	legalIntro       string
	faqIntro         string
	closing          string
	welcome          string
	noMatch          string
}

// fragmentsFor selects the fragment set for a language. The switch is
// exhaustive over the supported languages; anything else renders in
// English rather than as blank sections.
func fragmentsFor(l lang.Language) fragmentSet {
	switch l {
	case lang.Hindi:
		return hindiFragments
	case lang.Marathi:
		return marathiFragments
	case lang.English:
		return englishFragments
	default:
		return englishFragments
	}
}

var englishFragments = fragmentSet{
	greeting:         "I understand you need help with",
	fileReportPrompt: "For filing this complaint, please go to the 'File Report' section in our app and enter your details there. This will ensure your complaint is properly registered with a token number.",
	procedureIntro:   "Here's what the procedure involves:",
	documentsIntro:   "Required documents:",
	legalIntro:       "Legal framework:",
	faqIntro:         "Frequently asked questions:",
	closing:          "I hope this information helps you. Please don't hesitate to ask if you need any clarification or have other questions.",
	welcome:          "Hello! I am your AI Police Assistant. I can help you with police procedures, legal information, BNS/BNSS sections, officer contacts, and filing complaints. Please press the microphone button and speak your query in English, Hindi, or Marathi.",
	noMatch:          "I apologize, but I could not find information about your query in my knowledge base. Please try asking about: mobile theft, cyber fraud, house burglary, pickpocketing, missing persons, domestic violence, property disputes, vehicle theft, road accidents, lost items, BNS/BNSS sections, officer contacts, or police station information. You can also ask for legal procedures or required documents.",
}

var hindiFragments = fragmentSet{
	greeting:         "मैं समझ गया कि आपको सहायता चाहिए",
	fileReportPrompt: "इस शिकायत को दर्ज करने के लिए, कृपया हमारे ऐप में 'रिपोर्ट दर्ज करें' सेक्शन में जाएं और वहां अपना विवरण दर्ज करें। इससे आपकी शिकायत टोकन नंबर के साथ सही तरीके से दर्ज हो जाएगी।",
	procedureIntro:   "यहाँ बताया गया है कि प्रक्रिया में क्या शामिल है:",
	documentsIntro:   "आवश्यक दस्तावेज:",
	legalIntro:       "कानूनी ढांचा:",
	faqIntro:         "अक्सर पूछे जाने वाले प्रश्न:",
	closing:          "मुझे उम्मीद है कि यह जानकारी आपकी मदद करेगी। यदि आपको कोई स्पष्टीकरण चाहिए या अन्य प्रश्न हैं तो कृपया पूछने में संकोच न करें।",
	welcome:          "नमस्ते! मैं आपका एआई पुलिस सहायक हूं। मैं पुलिस प्रक्रियाओं, कानूनी जानकारी, BNS/BNSS धाराओं, अधिकारी संपर्क और शिकायत दर्ज करने में आपकी सहायता कर सकता हूं। कृपया माइक्रोफोन बटन दबाएं और अंग्रेजी, हिंदी या मराठी में अपना प्रश्न बोलें।",
	noMatch:          "मुझे खेद है, लेकिन मैं अपने ज्ञान आधार में आपके प्रश्न के बारे में जानकारी नहीं खोज सका। कृपया इन विषयों के बारे में पूछने का प्रयास करें: मोबाइल चोरी, साइबर धोखाधड़ी, घर की चोरी, जेब काटना, लापता व्यक्ति, घरेलू हिंसा, संपत्ति विवाद, वाहन चोरी, सड़क दुर्घटना, खोई वस्तुएं, BNS/BNSS धाराएं, अधिकारी संपर्क, या पुलिस स्टेशन जानकारी। आप कानूनी प्रक्रियाओं या आवश्यक दस्तावेजों के बारे में भी पूछ सकते हैं।",
}

var marathiFragments = fragmentSet{
	greeting:         "मला समजले की तुम्हाला मदत हवी आहे",
	fileReportPrompt: "ही तक्रार नोंदवण्यासाठी, कृपया आमच्या अॅपमधील 'रिपोर्ट दाखल करा' विभागात जा आणि तेथे तुमचे तपशील भरा. यामुळे तुमची तक्रार टोकन नंबरसह योग्यरित्या नोंदवली जाईल.",
	procedureIntro:   "प्रक्रियेत काय समाविष्ट आहे ते येथे आहे:",
	documentsIntro:   "आवश्यक कागदपत्रे:",
	legalIntro:       "कायदेशीर चौकट:",
	faqIntro:         "वारंवार विचारले जाणारे प्रश्न:",
	closing:          "मला आशा आहे की ही माहिती तुम्हाला मदत करेल. तुम्हाला कोणतेही स्पष्टीकरण हवे असल्यास किंवा इतर प्रश्न असल्यास कृपया विचारण्यास संकोच करू नका.",
	welcome:          "नमस्कार! मी तुमचा एआय पोलीस सहाय्यक आहे. मी पोलीस प्रक्रिया, कायदेशीर माहिती, BNS/BNSS कलम, अधिकारी संपर्क आणि तक्रार दाखल करण्यात तुमची मदत करू शकतो. कृपया मायक्रोफोन बटन दाबा आणि इंग्रजी, हिंदी किंवा मराठीत तुमचा प्रश्न बोला.",
	noMatch:          "मला माफ करा, परंतु मी माझ्या ज्ञान आधारात तुमच्या प्रश्नाबद्दल माहिती शोधू शकलो नाही. कृपया या विषयांबद्दल विचारण्याचा प्रयत्न करा: मोबाइल चोरी, सायबर फसवणूक, घरफोडी, खिशाकापू, हरवलेली व्यक्ती, घरगुती हिंसा, मालमत्ता वाद, वाहन चोरी, रस्ता अपघात, हरवलेल्या वस्तू, BNS/BNSS कलम, अधिकारी संपर्क, किंवा पोलीस स्टेशन माहिती. तुम्ही कायदेशीर प्रक्रिया किंवा आवश्यक कागदपत्रांबद्दल देखील विचारू शकता.",
}

// Welcome returns the opening message spoken when a conversation starts.
func Welcome(l lang.Language) string {
	return fragmentsFor(l).welcome
}

// NoMatch returns the fallback answer for queries nothing in the catalog
// covers.
func NoMatch(l lang.Language) string {
	return fragmentsFor(l).noMatch
}
