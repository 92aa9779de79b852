// Copyright 2024 Police Portal Assistant Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package knowledge

import "github.com/your-org/police-portal-assistant/internal/lang"

// OfficerContacts returns the station contact card in the given language.
func OfficerContacts(l lang.Language) string {
	switch l {
	case lang.Hindi:
		return `पुलिस स्टेशन संपर्क:
• पुलिस अधीक्षक: राहुल गुप्ता, IPS - rahul.gupta@gov.goa.in, +91 98765 43210
• थाना प्रभारी: अनिल नाइक - anil.naik@goapolice.gov.in, +91 91234 56789
• 24/7 हेल्पलाइन: +91 832 1000 999
• आपातकाल: 100`
	case lang.Marathi:
		return `पोलीस स्टेशन संपर्क:
• पोलीस अधीक्षक: राहुल गुप्ता, IPS - rahul.gupta@gov.goa.in, +91 98765 43210
• स्टेशन हाऊस ऑफिसर: अनिल नाईक - anil.naik@goapolice.gov.in, +91 91234 56789
• 24/7 हेल्पलाइन: +91 832 1000 999
• आपत्कालीन: 100`
	default:
		return `Police Station Contacts:
• Superintendent of Police: Rahul Gupta, IPS - rahul.gupta@gov.goa.in, +91 98765 43210
• Station House Officer: Anil Naik - anil.naik@goapolice.gov.in, +91 91234 56789
• 24/7 Helpline: +91 832 1000 999
• Emergency: 100`
	}
}

// StationInfo returns the station profile in the given language.
func StationInfo(l lang.Language) string {
	switch l {
	case lang.Hindi:
		return `पंजिम पुलिस स्टेशन जानकारी:
• पता: अल्टिन्हो, पणजी, गोवा, 403001
• स्टेशन कोड: PGS-011
• क्षेत्राधिकार: पणजी शहर की सीमा में अल्टिन्हो, पट्टो, रिबंदर, मिरामार शामिल
• सेवाएं: FIR पंजीकरण, पुलिस क्लीयरेंस सर्टिफिकेट, सत्यापन सेवाएं
• सुविधाएं: महिला सहायता डेस्क, ट्रैफिक यूनिट, साइबर सेल समन्वय`
	case lang.Marathi:
		return `पंजिम पोलीस स्टेशन माहिती:
• पत्ता: अल्टिन्हो, पणजी, गोवा, 403001
• स्टेशन कोड: PGS-011
• अधिकारक्षेत्र: पणजी शहराच्या हद्दीत अल्टिन्हो, पट्टो, रिबंदर, मिरामार समाविष्ट
• सेवा: FIR नोंदणी, पोलीस क्लिअरन्स सर्टिफिकेट, पडताळणी सेवा
• सुविधा: महिला मदत डेस्क, ट्रॅफिक युनिट, सायबर सेल समन्वय`
	default:
		return `Panjim Police Station Information:
• Address: Altinho, Panaji, Goa, 403001
• Station Code: PGS-011
• Jurisdiction: Panaji City limits including Altinho, Patto, Ribandar, Miramar
• Services: FIR registration, Police Clearance Certificate, Verification services
• Facilities: Women's Help Desk, Traffic Unit, Cyber Cell coordination`
	}
}
