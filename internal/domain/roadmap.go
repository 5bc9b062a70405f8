package domain

// Roadmap represents an imported learning roadmap
type Roadmap struct {
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Topics      []Topic `json:"topics" yaml:"topics"`
}

// Topic represents a single entry of a roadmap
type Topic struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Resources   []string `json:"resources,omitempty" yaml:"resources,omitempty"` // URLs
}

// FindTopic returns the topic with the given ID, if the roadmap contains it
func (r *Roadmap) FindTopic(id string) (*Topic, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Topics {
		if r.Topics[i].ID == id {
			return &r.Topics[i], true
		}
	}
	return nil, false
}

// TopicIDs returns the IDs of all topics in roadmap order
func (r *Roadmap) TopicIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.Topics))
	for _, t := range r.Topics {
		ids = append(ids, t.ID)
	}
	return ids
}
