package ast

import "golang.org/x/net/html/atom"

// Tag is one member of the closed HTML element vocabulary.
type Tag uint8

const (
	TagA Tag = iota
	TagAbbr
	TagAddress
	TagArea
	TagArticle
	TagAside
	TagAudio
	TagB
	TagBase
	TagBDI
	TagBDO
	TagBlockquote
	TagBody
	TagBR
	TagButton
	TagCanvas
	TagCaption
	TagCite
	TagCode
	TagCol
	TagColgroup
	TagData
	TagDatalist
	TagDD
	TagDel
	TagDetails
	TagDFN
	TagDialog
	TagDiv
	TagDL
	TagDT
	TagEm
	TagEmbed
	TagFieldset
	TagFigcaption
	TagFigure
	TagFooter
	TagForm
	TagH1
	TagH2
	TagH3
	TagH4
	TagH5
	TagH6
	TagHead
	TagHeader
	TagHgroup
	TagHR
	TagHTML
	TagI
	TagIframe
	TagImg
	TagInput
	TagIns
	TagKBD
	TagLabel
	TagLegend
	TagLI
	TagLink
	TagMain
	TagMap
	TagMark
	TagMath
	TagMenu
	TagMeta
	TagMeter
	TagNav
	TagNoscript
	TagObject
	TagOL
	TagOptgroup
	TagOption
	TagOutput
	TagP
	TagParam
	TagPicture
	TagPre
	TagProgress
	TagQ
	TagRP
	TagRT
	TagRuby
	TagS
	TagSamp
	TagScript
	TagSection
	TagSelect
	TagSlot
	TagSmall
	TagSource
	TagSpan
	TagStrong
	TagStyle
	TagSub
	TagSummary
	TagSup
	TagSVG
	TagTable
	TagTbody
	TagTD
	TagTemplate
	TagTextarea
	TagTfoot
	TagTH
	TagThead
	TagTime
	TagTitle
	TagTR
	TagTrack
	TagU
	TagUL
	TagVar
	TagVideo
	TagWBR

	tagCount
)

type tagInfo struct {
	name        string
	selfClosing bool
}

var tagTable = [tagCount]tagInfo{
	TagA:          {"a", false},
	TagAbbr:       {"abbr", false},
	TagAddress:    {"address", false},
	TagArea:       {"area", true},
	TagArticle:    {"article", false},
	TagAside:      {"aside", false},
	TagAudio:      {"audio", false},
	TagB:          {"b", false},
	TagBase:       {"base", true},
	TagBDI:        {"bdi", false},
	TagBDO:        {"bdo", false},
	TagBlockquote: {"blockquote", false},
	TagBody:       {"body", false},
	TagBR:         {"br", true},
	TagButton:     {"button", false},
	TagCanvas:     {"canvas", false},
	TagCaption:    {"caption", false},
	TagCite:       {"cite", false},
	TagCode:       {"code", false},
	TagCol:        {"col", true},
	TagColgroup:   {"colgroup", false},
	TagData:       {"data", false},
	TagDatalist:   {"datalist", false},
	TagDD:         {"dd", false},
	TagDel:        {"del", false},
	TagDetails:    {"details", false},
	TagDFN:        {"dfn", false},
	TagDialog:     {"dialog", false},
	TagDiv:        {"div", false},
	TagDL:         {"dl", false},
	TagDT:         {"dt", false},
	TagEm:         {"em", false},
	TagEmbed:      {"embed", true},
	TagFieldset:   {"fieldset", false},
	TagFigcaption: {"figcaption", false},
	TagFigure:     {"figure", false},
	TagFooter:     {"footer", false},
	TagForm:       {"form", false},
	TagH1:         {"h1", false},
	TagH2:         {"h2", false},
	TagH3:         {"h3", false},
	TagH4:         {"h4", false},
	TagH5:         {"h5", false},
	TagH6:         {"h6", false},
	TagHead:       {"head", false},
	TagHeader:     {"header", false},
	TagHgroup:     {"hgroup", false},
	TagHR:         {"hr", true},
	TagHTML:       {"html", false},
	TagI:          {"i", false},
	TagIframe:     {"iframe", false},
	TagImg:        {"img", true},
	TagInput:      {"input", true},
	TagIns:        {"ins", false},
	TagKBD:        {"kbd", false},
	TagLabel:      {"label", false},
	TagLegend:     {"legend", false},
	TagLI:         {"li", false},
	TagLink:       {"link", true},
	TagMain:       {"main", false},
	TagMap:        {"map", false},
	TagMark:       {"mark", false},
	TagMath:       {"math", false},
	TagMenu:       {"menu", false},
	TagMeta:       {"meta", true},
	TagMeter:      {"meter", false},
	TagNav:        {"nav", false},
	TagNoscript:   {"noscript", false},
	TagObject:     {"object", false},
	TagOL:         {"ol", false},
	TagOptgroup:   {"optgroup", false},
	TagOption:     {"option", false},
	TagOutput:     {"output", false},
	TagP:          {"p", false},
	TagParam:      {"param", true},
	TagPicture:    {"picture", false},
	TagPre:        {"pre", false},
	TagProgress:   {"progress", false},
	TagQ:          {"q", false},
	TagRP:         {"rp", false},
	TagRT:         {"rt", false},
	TagRuby:       {"ruby", false},
	TagS:          {"s", false},
	TagSamp:       {"samp", false},
	TagScript:     {"script", false},
	TagSection:    {"section", false},
	TagSelect:     {"select", false},
	TagSlot:       {"slot", false},
	TagSmall:      {"small", false},
	TagSource:     {"source", true},
	TagSpan:       {"span", false},
	TagStrong:     {"strong", false},
	TagStyle:      {"style", false},
	TagSub:        {"sub", false},
	TagSummary:    {"summary", false},
	TagSup:        {"sup", false},
	TagSVG:        {"svg", false},
	TagTable:      {"table", false},
	TagTbody:      {"tbody", false},
	TagTD:         {"td", false},
	TagTemplate:   {"template", false},
	TagTextarea:   {"textarea", false},
	TagTfoot:      {"tfoot", false},
	TagTH:         {"th", false},
	TagThead:      {"thead", false},
	TagTime:       {"time", false},
	TagTitle:      {"title", false},
	TagTR:         {"tr", false},
	TagTrack:      {"track", true},
	TagU:          {"u", false},
	TagUL:         {"ul", false},
	TagVar:        {"var", false},
	TagVideo:      {"video", false},
	TagWBR:        {"wbr", true},
}

var tagsByAtom = func() map[atom.Atom]Tag {
	m := make(map[atom.Atom]Tag, tagCount)

	for i, info := range tagTable {
		if a := atom.Lookup([]byte(info.name)); a != 0 {
			m[a] = Tag(i)
		}
	}

	return m
}()

// LookupTag resolves a tag keyword. Keywords match their lowercase canonical
// name exactly, so "header" never resolves to "head".
func LookupTag(name string) (Tag, bool) {
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return 0, false
	}

	t, ok := tagsByAtom[a]
	return t, ok
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, tagCount)
	for i := range tags {
		tags[i] = Tag(i)
	}

	return tags
}

func (t Tag) String() string {
	if t >= tagCount {
		return "<unknown>"
	}

	return tagTable[t].name
}

// SelfClosing reports whether the tag is rendered without content or closing
// tag.
func (t Tag) SelfClosing() bool {
	return t < tagCount && tagTable[t].selfClosing
}

// IsDocumentRoot reports whether rendering the tag starts a new document.
func (t Tag) IsDocumentRoot() bool {
	return t == TagHTML
}

func (t Tag) Atom() atom.Atom {
	return atom.Lookup([]byte(t.String()))
}
