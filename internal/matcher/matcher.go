// Package matcher decides which counterpart users should hear about a new
// donation or a new NGO need.
//
// Every text field is optional. An absent field is the empty string, and an
// empty string never satisfies a rule that requires the field to be present.
// All comparisons are case-insensitive.
//
// The title rule is deliberately not symmetric. For a new donation, an item
// matches when its name contains the first word of the need's title. For a new
// need, an item matches when the need's title contains the item's name.
package matcher

import (
	"sort"
	"strings"

	"github.com/shareity/backend/internal/models"
)

// Intent is a notification the matcher wants delivered
type Intent struct {
	UserID  string
	Type    models.NotificationType
	Title   string
	Message string
	Meta    map[string]interface{}
}

// KeywordRegistry maps an NGO ID to the keywords it collects
type KeywordRegistry map[string][]string

// NewKeywordRegistry builds the registry from NGO profiles. NGOs without keywords are skipped.
func NewKeywordRegistry(ngos []models.NGO) KeywordRegistry {
	registry := make(KeywordRegistry, len(ngos))
	for _, ngo := range ngos {
		if len(ngo.Keywords) > 0 {
			registry[ngo.ID] = ngo.Keywords
		}
	}
	return registry
}

// DonationCreated returns one donation_match intent per NGO with an active need
// matched by any of the donation's items, followed by one keyword_match intent
// per NGO whose keywords appear in the donation. The two kinds are not
// deduplicated against each other.
func DonationCreated(donation *models.Donation, needs []models.Need, keywords KeywordRegistry) []Intent {
	var intents []Intent
	meta := func() map[string]interface{} {
		return map[string]interface{}{"donationId": donation.ID}
	}

	seen := make(map[string]bool)
	for i := range needs {
		need := &needs[i]
		if need.Status != models.NeedActive || need.NgoID == "" || seen[need.NgoID] {
			continue
		}
		if !anyItem(donation.Items, func(item models.DonationItem) bool { return itemMatchesNeed(item, need) }) {
			continue
		}
		seen[need.NgoID] = true
		intents = append(intents, Intent{
			UserID:  need.NgoID,
			Type:    models.NotificationDonationMatch,
			Title:   "New donation may match your needs",
			Message: "A donor added items that match one of your active requests.",
			Meta:    meta(),
		})
	}

	text := itemsText(donation.Items)
	ngoIDs := make([]string, 0, len(keywords))
	for id := range keywords {
		ngoIDs = append(ngoIDs, id)
	}
	sort.Strings(ngoIDs)
	for _, ngoID := range ngoIDs {
		if ngoID == "" || !containsKeyword(text, keywords[ngoID]) {
			continue
		}
		intents = append(intents, Intent{
			UserID:  ngoID,
			Type:    models.NotificationKeywordMatch,
			Title:   "New donation matches your collection keywords",
			Message: "A donor added items related to your collection preferences.",
			Meta:    meta(),
		})
	}
	return intents
}

// RequestCreated returns one request_match intent per donor with a pending
// donation matched by the new need
func RequestCreated(need *models.Need, donations []models.Donation) []Intent {
	var intents []Intent
	seen := make(map[string]bool)
	for i := range donations {
		d := &donations[i]
		if d.Status != models.DonationPending || d.DonorID == "" || seen[d.DonorID] {
			continue
		}
		if !anyItem(d.Items, func(item models.DonationItem) bool { return needMatchesItem(need, item) }) {
			continue
		}
		seen[d.DonorID] = true
		title := need.Title
		if title == "" {
			title = "A request"
		}
		intents = append(intents, Intent{
			UserID:  d.DonorID,
			Type:    models.NotificationRequestMatch,
			Title:   "An NGO needs items you can provide",
			Message: title + " may match your donation items.",
			Meta:    map[string]interface{}{"requestId": need.ID, "ngoId": need.NgoID},
		})
	}
	return intents
}

// Accepted returns the intent telling an NGO that a donor pledged to its need
func Accepted(need *models.Need, donorID string) Intent {
	return Intent{
		UserID:  need.NgoID,
		Type:    models.NotificationRequestAccepted,
		Title:   "A donor pledged to your request",
		Message: "A donor has accepted to fulfill part of your request.",
		Meta:    map[string]interface{}{"requestId": need.ID, "donorId": donorID},
	}
}

func anyItem(items []models.DonationItem, pred func(models.DonationItem) bool) bool {
	for _, item := range items {
		if pred(item) {
			return true
		}
	}
	return false
}

// itemMatchesNeed applies the donation-side rules to one item
func itemMatchesNeed(item models.DonationItem, need *models.Need) bool {
	name := strings.ToLower(item.Name)
	category := strings.ToLower(item.Category)
	title := strings.ToLower(need.Title)
	description := strings.ToLower(need.Description)

	if category != "" && need.Category != "" && category == strings.ToLower(need.Category) {
		return true
	}
	if name != "" {
		if word := firstWord(title); word != "" && strings.Contains(name, word) {
			return true
		}
		if description != "" && strings.Contains(description, name) {
			return true
		}
	}
	return false
}

// needMatchesItem applies the need-side rules to one item
func needMatchesItem(need *models.Need, item models.DonationItem) bool {
	name := strings.ToLower(item.Name)
	category := strings.ToLower(item.Category)
	title := strings.ToLower(need.Title)
	description := strings.ToLower(need.Description)

	if need.Category != "" && category == strings.ToLower(need.Category) {
		return true
	}
	if name != "" {
		if title != "" && strings.Contains(title, name) {
			return true
		}
		if description != "" && strings.Contains(description, name) {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// itemsText is every item rendered as "name category", joined by spaces and lowercased
func itemsText(items []models.DonationItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Name + " " + item.Category
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func containsKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
