package social

// Post is a page post shaped for rendering: message text, a
// representative image, and the permalink.
type Post struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	CreatedISO   string `json:"createdISO"`
	CreatedHuman string `json:"createdHuman"`
	Image        string `json:"image"`
	Link         string `json:"link"`
}

// Photo is a single page photo, either uploaded directly or lifted out
// of a post's attachments.
type Photo struct {
	ID           string `json:"id"`
	PermalinkURL string `json:"permalink_url"`
	CreatedTime  string `json:"created_time"`
	FullPicture  string `json:"full_picture"`
}

// Graph API wire shapes. Only the fields this service renders are
// declared; everything else in the response is ignored.

type graphImage struct {
	Src string `json:"src"`
}

type graphMedia struct {
	Image graphImage `json:"image"`
}

type graphTarget struct {
	ID string `json:"id"`
}

type graphAttachment struct {
	MediaType      string      `json:"media_type"`
	Media          graphMedia  `json:"media"`
	Target         graphTarget `json:"target"`
	URL            string      `json:"url"`
	Subattachments struct {
		Data []graphAttachment `json:"data"`
	} `json:"subattachments"`
}

type graphPost struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	Story        string `json:"story"`
	CreatedTime  string `json:"created_time"`
	PermalinkURL string `json:"permalink_url"`
	FullPicture  string `json:"full_picture"`
	Attachments  struct {
		Data []graphAttachment `json:"data"`
	} `json:"attachments"`
}

type graphPhoto struct {
	ID           string `json:"id"`
	PermalinkURL string `json:"permalink_url"`
	CreatedTime  string `json:"created_time"`
	Name         string `json:"name"`
	FullPicture  string `json:"full_picture"`
	Source       string `json:"source"`
	Link         string `json:"link"`
	Images       []struct {
		Source string `json:"source"`
	} `json:"images"`
}

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type postsEnvelope struct {
	Data  []graphPost `json:"data"`
	Error *graphError `json:"error"`
}

type photosEnvelope struct {
	Data  []graphPhoto `json:"data"`
	Error *graphError  `json:"error"`
}
