package domain

// statusTransitions - таблица разрешенных переходов. Ребра только вперед,
// approved и rejected конечные.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusReviewed, StatusContacted, StatusApproved, StatusRejected},
	StatusReviewed:  {StatusContacted, StatusApproved, StatusRejected},
	StatusContacted: {StatusApproved, StatusRejected},
	StatusApproved:  {},
	StatusRejected:  {},
}

// AllowedNextStatuses возвращает статусы, достижимые из current за один шаг.
// Для неизвестного статуса возвращает пустой список.
func AllowedNextStatuses(current Status) []Status {
	next, ok := statusTransitions[current]
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition сообщает, разрешен ли переход from -> to.
func CanTransition(from, to Status) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal - true для approved и rejected.
func IsTerminal(s Status) bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}
