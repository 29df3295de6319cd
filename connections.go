package teklinicv

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/alnah/go-teklinicv/internal/strproc"
)

// socialNetwork describes how to link a username on a known network.
type socialNetwork struct {
	icon string
	// profileURL builds the profile link; ok is false for malformed names.
	profileURL func(username string) (link string, ok bool)
	// display is the visible text; nil shows the username.
	display func(username string) string
}

func prefixed(base string) func(string) (string, bool) {
	return func(u string) (string, bool) {
		return base + url.PathEscape(u), u != ""
	}
}

var socialNetworks = map[string]socialNetwork{
	"LinkedIn":       {icon: "linkedin", profileURL: prefixed("https://linkedin.com/in/")},
	"GitHub":         {icon: "github", profileURL: prefixed("https://github.com/")},
	"GitLab":         {icon: "gitlab", profileURL: prefixed("https://gitlab.com/")},
	"X":              {icon: "x-twitter", profileURL: prefixed("https://x.com/")},
	"ORCID":          {icon: "orcid", profileURL: prefixed("https://orcid.org/")},
	"ResearchGate":   {icon: "researchgate", profileURL: prefixed("https://researchgate.net/profile/")},
	"YouTube":        {icon: "youtube", profileURL: prefixed("https://youtube.com/@")},
	"Telegram":       {icon: "telegram", profileURL: prefixed("https://t.me/")},
	"IMDB":           {icon: "imdb", profileURL: prefixed("https://imdb.com/name/")},
	"Instagram":      {icon: "instagram", profileURL: prefixed("https://instagram.com/")},
	"Bluesky":        {icon: "bluesky", profileURL: prefixed("https://bsky.app/profile/")},
	"Mastodon":       {icon: "mastodon", profileURL: mastodonURL},
	"StackOverflow":  {icon: "stack-overflow", profileURL: stackOverflowURL, display: stackOverflowName},
	"Google Scholar": {icon: "graduation-cap", profileURL: scholarURL, display: func(string) string { return "Google Scholar" }},
}

// socialNetworkOrder is the canonical display order of social networks.
var socialNetworkOrder = []string{
	"LinkedIn", "GitHub", "GitLab", "X", "Mastodon", "Bluesky",
	"ORCID", "Google Scholar", "ResearchGate", "StackOverflow",
	"YouTube", "Instagram", "Telegram", "IMDB",
}

// mastodonURL maps "@user@instance.social" to https://instance.social/@user.
func mastodonURL(username string) (string, bool) {
	parts := strings.Split(strings.TrimPrefix(username, "@"), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return "https://" + parts[1] + "/@" + url.PathEscape(parts[0]), true
}

// stackOverflowURL expects "id/name", as in the profile URL.
func stackOverflowURL(username string) (string, bool) {
	id, name, ok := strings.Cut(username, "/")
	if !ok || id == "" || name == "" {
		return "", false
	}
	return "https://stackoverflow.com/users/" + url.PathEscape(id) + "/" + url.PathEscape(name), true
}

func stackOverflowName(username string) string {
	_, name, _ := strings.Cut(username, "/")
	return name
}

func scholarURL(username string) (string, bool) {
	return "https://scholar.google.com/citations?user=" + url.QueryEscape(username), username != ""
}

// IsKnownNetwork reports whether name is a supported social network.
func IsKnownNetwork(name string) bool {
	_, ok := socialNetworks[name]
	return ok
}

// KnownNetworks lists the supported social networks in display order.
func KnownNetworks() []string {
	return slices.Clone(socialNetworkOrder)
}

// ProfileURL returns the profile link for a social network account.
func (s SocialNetwork) ProfileURL() (string, error) {
	n, ok := socialNetworks[s.Network]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s.Network)
	}
	link, ok := n.profileURL(s.Username)
	if !ok {
		return "", fmt.Errorf("%w: malformed %s username %q", ErrInvalidInput, s.Network, s.Username)
	}
	return link, nil
}

// connection is one item of the header's contact line.
type connection struct {
	icon string
	text string
	link string // empty for plain text
}

// connectionsOf lists the CV's contact details in display order: location,
// email, phone, website, then social networks in canonical network order.
// Accounts that cannot be linked are skipped; the loader rejects them
// earlier.
func connectionsOf(cv *CV) []connection {
	var out []connection
	if cv.Location != "" {
		out = append(out, connection{icon: "location-dot", text: cv.Location})
	}
	if cv.Email != "" {
		out = append(out, connection{icon: "envelope", text: cv.Email, link: "mailto:" + cv.Email})
	}
	if cv.Phone != "" {
		out = append(out, connection{icon: "phone", text: cv.Phone, link: "tel:" + phoneDigits(cv.Phone)})
	}
	if cv.Website != "" {
		out = append(out, connection{icon: "link", text: strproc.CleanURL(cv.Website), link: cv.Website})
	}
	socials := slices.Clone(cv.SocialNetworks)
	slices.SortStableFunc(socials, func(a, b SocialNetwork) int {
		return slices.Index(socialNetworkOrder, a.Network) - slices.Index(socialNetworkOrder, b.Network)
	})
	for _, sn := range socials {
		link, err := sn.ProfileURL()
		if err != nil {
			continue
		}
		n := socialNetworks[sn.Network]
		text := sn.Username
		if n.display != nil {
			text = n.display(sn.Username)
		}
		out = append(out, connection{icon: n.icon, text: text, link: link})
	}
	return out
}

// phoneDigits keeps the characters valid in a tel: URI.
func phoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, phone)
}

// renderConnections formats connections as markup for f.
func renderConnections(conns []connection, f Format) []string {
	out := make([]string, len(conns))
	for i, c := range conns {
		switch f {
		case FormatTypst:
			if c.link == "" {
				out[i] = fmt.Sprintf(`#connection(icon: "%s")[%s]`, c.icon, strproc.EscapeTypst(c.text))
			} else {
				out[i] = fmt.Sprintf(`#connection(icon: "%s", url: "%s")[%s]`,
					c.icon, strproc.TypstString(c.link), strproc.EscapeTypst(c.text))
			}
		default:
			if c.link == "" {
				out[i] = c.text
			} else {
				out[i] = "[" + c.text + "](" + c.link + ")"
			}
		}
	}
	return out
}
