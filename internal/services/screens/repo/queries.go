package repo

// Fragments are spliced into every document that selects the entity
// __typename is selected everywhere so the cache can normalize the result
const (
	comicSeriesFields = `
fragment ComicSeriesFields on ComicSeries {
  __typename
  uuid
  shortUrl
  name
  description
  type
  genres
  tags
  coverImageUrl
  bannerImageUrl
}`

	comicIssueFields = `
fragment ComicIssueFields on ComicIssue {
  __typename
  uuid
  name
  seriesUuid
  position
  datePublished
  creatorNote
  thumbnailImageUrl
  stories {
    __typename
    id
    storyImageUrl
    width
    height
  }
}`

	creatorFields = `
fragment CreatorFields on Creator {
  __typename
  uuid
  shortUrl
  name
  bio
  avatarImageUrl
  links {
    type
    url
  }
}`
)

const (
	opHomeScreen  = "getHomeScreen"
	opComicSeries = "getComicSeries"
	opComicIssue  = "getComicIssue"
	opCreator     = "getCreator"
	opList        = "getList"
	opSearch      = "search"
)

const queryHomeScreen = `
query getHomeScreen {
  getHomeScreen {
    __typename
    featuredComicSeries { ...ComicSeriesFields }
    curatedLists {
      __typename
      id
      name
      description
      comicseries { ...ComicSeriesFields }
    }
    mostPopularComicSeries { ...ComicSeriesFields }
    recentlyAddedComicSeries { ...ComicSeriesFields }
    recentlyUpdatedComicSeries { ...ComicSeriesFields }
  }
}` + comicSeriesFields

const queryComicSeries = `
query getComicSeries($uuid: ID, $shortUrl: String) {
  getComicSeries(uuid: $uuid, shortUrl: $shortUrl) {
    ...ComicSeriesFields
    issues { ...ComicIssueFields }
  }
}` + comicSeriesFields + comicIssueFields

const queryComicIssue = `
query getComicIssue($uuid: ID, $shortUrl: String, $episodeId: String) {
  getComicIssue(uuid: $uuid, shortUrl: $shortUrl, episodeId: $episodeId) {
    ...ComicIssueFields
  }
}` + comicIssueFields

const queryCreator = `
query getCreator($uuid: ID, $shortUrl: String) {
  getCreator(uuid: $uuid, shortUrl: $shortUrl) {
    ...CreatorFields
    comicseries { ...ComicSeriesFields }
  }
}` + creatorFields + comicSeriesFields

const queryList = `
query getList($id: ID!) {
  getList(id: $id) {
    __typename
    id
    name
    description
    comicseries { ...ComicSeriesFields }
  }
}` + comicSeriesFields

const querySearch = `
query search($term: String, $page: Int, $limitPerPage: Int, $filterForTypes: [String], $filterForTags: [String], $filterForGenres: [Genre]) {
  search(term: $term, page: $page, limitPerPage: $limitPerPage, filterForTypes: $filterForTypes, filterForTags: $filterForTags, filterForGenres: $filterForGenres) {
    comicseries { ...ComicSeriesFields }
    creators { ...CreatorFields }
  }
}` + comicSeriesFields + creatorFields
