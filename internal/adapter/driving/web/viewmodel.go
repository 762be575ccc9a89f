package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	vm "github.com/ericfisherdev/socialpanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

var platformLabels = map[model.Platform]string{
	model.PlatformYouTube: "YouTube",
	model.PlatformReddit:  "Reddit",
}

var actionLabels = map[model.Action]string{
	model.ActionCreate: "Create",
	model.ActionRead:   "Read",
	model.ActionUpdate: "Update",
	model.ActionDelete: "Delete",
}

var errorLabels = map[model.ErrorKind]string{
	model.ErrorKindAuthentication: "Authentication error",
	model.ErrorKindValidation:     "Invalid input",
	model.ErrorKindVendorAPI:      "Platform API error",
	model.ErrorKindLocalIO:        "File error",
}

// dashboardState is the selection the dashboard renders.
type dashboardState struct {
	platform  model.Platform
	action    model.Action
	connected map[model.Platform]bool
	values    map[string]string
	result    *model.OperationResult
	csrfToken string
}

func toDashboardViewModel(s dashboardState) vm.DashboardViewModel {
	platforms := make([]vm.TabViewModel, 0, len(model.Platforms))
	for _, p := range model.Platforms {
		platforms = append(platforms, vm.TabViewModel{
			Value:     string(p),
			Label:     platformLabels[p],
			Path:      "/?platform=" + string(p) + "&action=" + string(s.action),
			Selected:  p == s.platform,
			Connected: s.connected[p],
		})
	}

	actions := make([]vm.TabViewModel, 0, len(model.Actions))
	for _, a := range model.Actions {
		actions = append(actions, vm.TabViewModel{
			Value:    string(a),
			Label:    actionLabels[a],
			Path:     "/?platform=" + string(s.platform) + "&action=" + string(a),
			Selected: a == s.action,
		})
	}

	base := "/app/" + string(s.platform)
	dashboard := vm.DashboardViewModel{
		Title:          "Social Panel",
		CSRFToken:      s.csrfToken,
		Platforms:      platforms,
		Actions:        actions,
		Platform:       string(s.platform),
		PlatformLabel:  platformLabels[s.platform],
		Action:         string(s.action),
		Connected:      s.connected[s.platform],
		ConnectPath:    base + "/connect",
		DisconnectPath: base + "/disconnect",
		Form: vm.FormViewModel{
			ActionPath:  base + "/" + string(s.action),
			SubmitLabel: actionLabels[s.action],
			Fields:      formFields(s.platform, s.action, s.values),
		},
	}

	if s.result != nil {
		r := toResultViewModel(*s.result)
		dashboard.Result = &r
	}

	return dashboard
}

// formFields returns the inputs of the form for platform and action,
// prefilled with values.
func formFields(platform model.Platform, action model.Action, values map[string]string) []vm.FieldViewModel {
	var fields []vm.FieldViewModel
	add := func(name, label, typ, placeholder string, required bool, help string) {
		fields = append(fields, vm.FieldViewModel{
			Name:        name,
			Label:       label,
			Type:        typ,
			Value:       values[name],
			Placeholder: placeholder,
			Required:    required,
			Help:        help,
		})
	}

	switch platform {
	case model.PlatformYouTube:
		switch action {
		case model.ActionCreate:
			add(model.FieldMediaPath, "Media file path", "text", "/path/to/video.mp4", true, "Path on the machine running the panel.")
			add(model.FieldTitle, "Title", "text", "", true, "")
			add(model.FieldDescription, "Description", "textarea", "", false, "")
			add(model.FieldTags, "Tags", "text", "tag one, tag two", false, "Comma separated.")
		case model.ActionRead, model.ActionDelete:
			add(model.FieldVideoID, "Video ID", "text", "dQw4w9WgXcQ", true, "")
		case model.ActionUpdate:
			add(model.FieldVideoID, "Video ID", "text", "dQw4w9WgXcQ", true, "")
			add(model.FieldTitle, "Title", "text", "", false, "")
			add(model.FieldDescription, "Description", "textarea", "", false, "")
		}

	case model.PlatformReddit:
		switch action {
		case model.ActionCreate:
			add(model.FieldCommunity, "Subreddit", "text", "golang", true, "")
			add(model.FieldTitle, "Title", "text", "", true, "")
			add(model.FieldBody, "Body", "textarea", "", false, "Markdown.")
		case model.ActionRead:
			add(model.FieldCommunity, "Subreddit", "text", "golang", true, "")
			add(model.FieldLimit, "Number of posts", "number", "5", false, "Between 1 and 10.")
		case model.ActionUpdate:
			add(model.FieldPostID, "Post ID", "text", "t3_abc123", true, "")
			add(model.FieldBody, "New body", "textarea", "", false, "Markdown.")
		case model.ActionDelete:
			add(model.FieldPostID, "Post ID", "text", "t3_abc123", true, "")
		}
	}

	return fields
}

// fieldNames lists the form field names accepted for platform and action.
func fieldNames(platform model.Platform, action model.Action) []string {
	fields := formFields(platform, action, nil)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func toResultViewModel(res model.OperationResult) vm.ResultViewModel {
	r := vm.ResultViewModel{
		Success:    res.Success,
		Message:    res.Message,
		ErrorKind:  string(res.ErrorKind),
		ErrorLabel: errorLabels[res.ErrorKind],
		ResourceID: res.ResourceID,
	}

	if res.Video != nil {
		v := toVideoViewModel(*res.Video)
		r.Video = &v
	}

	if len(res.Posts) > 0 {
		r.Posts = make([]vm.PostViewModel, 0, len(res.Posts))
		for _, p := range res.Posts {
			r.Posts = append(r.Posts, toPostViewModel(p))
		}
	}

	return r
}

func toVideoViewModel(v model.Video) vm.VideoViewModel {
	out := vm.VideoViewModel{
		ID:              v.ID,
		Title:           v.Title,
		DescriptionHTML: template.HTML(RenderMarkdown(v.Description)), //nolint:gosec // sanitized by bluemonday
		Tags:            v.Tags,
		ChannelTitle:    v.ChannelTitle,
		Views:           humanize.Comma(int64(v.ViewCount)),
		Likes:           humanize.Comma(int64(v.LikeCount)),
		Comments:        humanize.Comma(int64(v.CommentCount)),
		PrivacyStatus:   v.PrivacyStatus,
		WatchURL:        "https://www.youtube.com/watch?v=" + v.ID,
		Document:        prettyJSON(v.Document),
	}
	if !v.PublishedAt.IsZero() {
		out.Published = v.PublishedAt.UTC().Format(time.RFC1123)
		out.PublishedAgo = humanize.Time(v.PublishedAt)
	}
	return out
}

func toPostViewModel(p model.Post) vm.PostViewModel {
	out := vm.PostViewModel{
		ID:       p.ID,
		FullID:   p.FullID,
		Title:    p.Title,
		Author:   p.Author,
		Score:    humanize.Comma(int64(p.Score)),
		URL:      p.URL,
		BodyHTML: template.HTML(RenderMarkdown(p.Body)), //nolint:gosec // sanitized by bluemonday
	}
	if !p.CreatedAt.IsZero() {
		out.Age = humanize.Time(p.CreatedAt)
	}
	return out
}

// prettyJSON indents a JSON document for display. Invalid documents are
// returned as-is.
func prettyJSON(doc []byte) string {
	if len(doc) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err != nil {
		return strings.TrimSpace(string(doc))
	}
	return buf.String()
}
