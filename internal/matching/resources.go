package matching

import "strings"

// learningResources maps common skills to starting points for closing a
// gap. Keys are lowercase canonical skill names.
var learningResources = map[string][]string{
	"python": {
		"Python official tutorial (docs.python.org)",
		"Automate the Boring Stuff with Python",
	},
	"aws": {
		"AWS Skill Builder free courses",
		"AWS Certified Cloud Practitioner path",
	},
	"docker": {
		"Docker Get Started guide (docs.docker.com)",
		"Play with Docker labs",
	},
	"kubernetes": {
		"Kubernetes Basics interactive tutorial",
		"CKA certification curriculum",
	},
	"react": {
		"React official tutorial (react.dev)",
		"The Odin Project React course",
	},
	"sql": {
		"SQLBolt interactive lessons",
		"Mode SQL tutorial",
	},
	"machine learning": {
		"Andrew Ng's Machine Learning specialization",
		"fast.ai Practical Deep Learning",
	},
}

// learningResourcesFor returns suggested resources for each missing skill.
// Skills without a curated entry get a generic search suggestion.
func learningResourcesFor(missing []string) map[string][]string {
	if len(missing) == 0 {
		return nil
	}
	out := make(map[string][]string, len(missing))
	for _, skill := range missing {
		if resources, ok := learningResources[strings.ToLower(skill)]; ok {
			out[skill] = append([]string(nil), resources...)
		} else {
			out[skill] = []string{"Search for \"" + skill + " tutorial\" on your preferred learning platform"}
		}
	}
	return out
}
