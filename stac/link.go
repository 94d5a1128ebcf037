package stac

// Link is a typed relation from an item to another resource
type Link struct {
	Rel   string
	Href  string
	Type  string
	Title string
}

// LinkFromDocument parses a link object; missing fields stay empty
func LinkFromDocument(doc map[string]interface{}) Link {
	return Link{
		Rel:   stringAt(doc, "rel"),
		Href:  stringAt(doc, "href"),
		Type:  stringAt(doc, "type"),
		Title: stringAt(doc, "title"),
	}
}

// ToDocument serializes the link, omitting empty optional fields
func (l Link) ToDocument() map[string]interface{} {
	doc := map[string]interface{}{
		"rel":  l.Rel,
		"href": l.Href,
	}
	if l.Type != "" {
		doc["type"] = l.Type
	}
	if l.Title != "" {
		doc["title"] = l.Title
	}
	return doc
}
