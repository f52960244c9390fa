package domain

// KeyPrefix namespaces every key written to the store.
const KeyPrefix = "satark:"

// Collection names. Every chunk lands in CollectionAll; rulings and bare acts
// are additionally indexed into their dedicated collections for scoped search.
const (
	CollectionAll     = "all_documents"
	CollectionRulings = "court_rulings"
	CollectionActs    = "bare_acts"
)

// Collections returns all collection names in creation order.
func Collections() []string {
	return []string{CollectionAll, CollectionRulings, CollectionActs}
}

// CollectionForType returns the dedicated collection for a document type,
// or "" when the type only belongs to the shared collection.
func CollectionForType(docType string) string {
	switch docType {
	case "court_ruling":
		return CollectionRulings
	case "bare_act":
		return CollectionActs
	default:
		return ""
	}
}
