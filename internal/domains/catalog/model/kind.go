package model

// Kind identifies one catalog entity family. Every shelf entry and every
// enrichment walk carries a Kind next to the entity id.
type Kind string

const (
	KindBook    Kind = "book"
	KindMovie   Kind = "movie"
	KindPodcast Kind = "podcast"
	KindTVShow  Kind = "tvshow"
	KindArticle Kind = "article"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindBook, KindMovie, KindPodcast, KindTVShow, KindArticle:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
