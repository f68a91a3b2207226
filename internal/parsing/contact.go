package parsing

import (
	"strings"

	"github.com/callen/resume-analyzer/internal/types"
)

// extractContact pulls contact fields out of the text. The first match of
// each kind wins and nothing is validated beyond the pattern itself.
func (p *Parser) extractContact(text string) types.ContactInfo {
	contact := types.ContactInfo{}

	if email := p.emailPattern.FindString(text); email != "" {
		contact.Email = email
	}
	if phone := strings.TrimSpace(p.phonePattern.FindString(text)); phone != "" {
		contact.Phone = phone
	}
	if linkedin := p.linkedinPattern.FindString(text); linkedin != "" {
		contact.LinkedIn = linkedin
	}
	if github := p.githubPattern.FindString(text); github != "" {
		contact.GitHub = github
	}

	return contact
}
