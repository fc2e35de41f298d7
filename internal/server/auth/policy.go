package auth

// OwnershipPolicy decides whether a resolved identity may mutate a given
// resource. It is deliberately dumb: equality of subject and owner, nothing
// else, because the only role the system knows is "resource owner".
type OwnershipPolicy struct{}

func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// CanMutateUser reports whether subjectID may update, delete or change the
// password of the user identified by targetUserID.
func (p *OwnershipPolicy) CanMutateUser(subjectID, targetUserID string) bool {
	return subjectID != "" && subjectID == targetUserID
}

// CanMutatePost reports whether subjectID may update or delete a post owned
// by ownerID. Liking a post is not a mutation in this sense and is not
// gated here.
func (p *OwnershipPolicy) CanMutatePost(subjectID, ownerID string) bool {
	return subjectID != "" && subjectID == ownerID
}
