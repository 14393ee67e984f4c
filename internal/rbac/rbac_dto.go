package rbac

type EnforceRequest struct {
	ActorID  string `json:"actor_id"`
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
