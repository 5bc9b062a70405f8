package commands

import (
	"context"

	"roadtrack/internal/application"
	"roadtrack/internal/domain"
)

// TopicView is a topic together with its effective progress
type TopicView struct {
	Topic    domain.Topic
	Progress domain.ProgressRecord
}

// ListTopicsCommand lists the topics of the current roadmap in order
type ListTopicsCommand struct {
	state *application.State
}

// NewListTopicsCommand creates a new ListTopicsCommand
func NewListTopicsCommand(state *application.State) *ListTopicsCommand {
	return &ListTopicsCommand{state: state}
}

// Execute runs the list topics command
func (c *ListTopicsCommand) Execute(ctx context.Context) ([]TopicView, error) {
	snap := c.state.Snapshot()
	if snap.Roadmap == nil {
		return nil, application.ErrNoRoadmap
	}

	views := make([]TopicView, 0, len(snap.Roadmap.Topics))
	for _, t := range snap.Roadmap.Topics {
		rec, ok := snap.Progress[t.ID]
		if !ok {
			rec = domain.DefaultRecord()
		}
		views = append(views, TopicView{Topic: t, Progress: rec})
	}
	return views, nil
}

// GetTopicCommand returns one topic of the current roadmap
type GetTopicCommand struct {
	state   *application.State
	TopicID string
}

// NewGetTopicCommand creates a new GetTopicCommand
func NewGetTopicCommand(state *application.State, topicID string) *GetTopicCommand {
	return &GetTopicCommand{
		state:   state,
		TopicID: topicID,
	}
}

// Execute runs the get topic command
func (c *GetTopicCommand) Execute(ctx context.Context) (*TopicView, error) {
	if err := checkTopic(c.state, c.TopicID); err != nil {
		return nil, err
	}
	topic, ok := c.state.Roadmap().FindTopic(c.TopicID)
	if !ok {
		return nil, &application.TopicError{TopicID: c.TopicID}
	}
	return &TopicView{
		Topic:    *topic,
		Progress: c.state.Record(c.TopicID),
	}, nil
}
