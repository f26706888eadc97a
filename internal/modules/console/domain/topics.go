package domain

import "strings"

const (
	SystemEntity = "system"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"
	TopicSystemReset     = SystemEntity + ".reset"

	TopicSystemSubscription = SystemEntity + ".subscription"

	ActionConnected      = "connected"
	ActionPong           = "pong"
	ActionError          = "error"
	ActionSubscribed     = "subscribed"
	ActionUnsubscribed   = "unsubscribed"
	ActionChanged        = "changed"
	ActionListRequested  = "list_requested"
	ActionListLoaded     = "list_loaded"
	ActionListFailed     = "list_failed"
	ActionCreated        = "created"
	ActionUpdated        = "updated"
	ActionDeleted        = "deleted"
	ActionStatusToggled  = "status_toggled"
	ActionRestored       = "restored"
	ActionMutationFailed = "mutation_failed"
	ActionFiltersChanged = "filters_changed"
	ActionPageChanged    = "page_changed"
	ActionSelected       = "selected"
	ActionReset          = "reset"
	ActionState          = "state"
)

// ChangedTopic is published after every successful operation on entity.
func ChangedTopic(entity string) string {
	return buildEntityTopic(entity, ActionChanged)
}

// StateTopic carries local view changes (filters, page, selection) of entity.
func StateTopic(entity string) string {
	return buildEntityTopic(entity, ActionState)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

// SplitTopic returns the entity and action parts of topic.
func SplitTopic(topic string) (string, string) {
	entity, action, found := strings.Cut(strings.TrimSpace(topic), ".")
	if !found {
		return entity, ""
	}
	return entity, action
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
