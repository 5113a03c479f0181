package osfapi

// Wire types mirroring the JSON:API documents the OSF returns. Unexported;
// callers only ever see Project, Storage, File, and Folder.

type singleResponse struct {
	Data resource `json:"data"`
}

type listResponse struct {
	Data  []resource `json:"data"`
	Links pageLinks  `json:"links"`
}

type pageLinks struct {
	Next string `json:"next"`
}

type resource struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	Attributes    resourceAttributes `json:"attributes"`
	Links         resourceLinks      `json:"links"`
	Relationships relationships      `json:"relationships"`
}

type resourceAttributes struct {
	Kind         string         `json:"kind"`
	Name         string         `json:"name"`
	Title        string         `json:"title"`
	Path         string         `json:"path"`
	Materialized string         `json:"materialized_path"`
	Provider     string         `json:"provider"`
	Size         *int64         `json:"size"`
	DateModified string         `json:"date_modified"`
	Extra        *resourceExtra `json:"extra"`
}

type resourceExtra struct {
	Hashes map[string]string `json:"hashes"`
}

type resourceLinks struct {
	Upload    string `json:"upload"`
	Download  string `json:"download"`
	Delete    string `json:"delete"`
	Move      string `json:"move"`
	NewFolder string `json:"new_folder"`
}

type relationships struct {
	Files *relationship `json:"files"`
}

type relationship struct {
	Links relationshipLinks `json:"links"`
}

type relationshipLinks struct {
	Related relatedLink `json:"related"`
}

type relatedLink struct {
	Href string `json:"href"`
}

// childrenURL returns the listing URL for a container resource, or "" when
// the document carries no files relationship.
func (r resource) childrenURL() string {
	if r.Relationships.Files == nil {
		return ""
	}

	return r.Relationships.Files.Links.Related.Href
}

// moveRequest is the Waterbutler move/rename action body.
type moveRequest struct {
	Action   string `json:"action"`
	Path     string `json:"path"`
	Provider string `json:"provider,omitempty"`
	Rename   string `json:"rename,omitempty"`
	Conflict string `json:"conflict,omitempty"`
}
