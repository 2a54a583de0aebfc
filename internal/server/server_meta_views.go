package server

type serverInfoResponse struct {
	Name       string `json:"name"`
	APIVersion int    `json:"api_version"`
	Version    string `json:"version"`
	Release    bool   `json:"release"`
	Hostname   string `json:"hostname,omitempty"`
	Pages      int    `json:"pages"`
}

type healthzResponse struct {
	Status string `json:"status"`
}
