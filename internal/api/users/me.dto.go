package users

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

type UserDTO struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type AccessDTO struct {
	Capabilities      []string `json:"capabilities"`
	CanManageAllMedia bool     `json:"can_manage_all_media"`
}
