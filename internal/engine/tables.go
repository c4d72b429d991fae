package engine

import "shoulu/internal/domain"

// Lookup tables follow 《天壇玉格》. They are built once and only read afterwards.

type marshalEntry struct {
	Honorific string
	Name      string
}

func (m marshalEntry) FullName() string { return m.Honorific + m.Name }

var (
	marshalWen  = marshalEntry{Honorific: "地祇主令都巡太保", Name: "溫元帥"}
	marshalMa   = marshalEntry{Honorific: "正一解厄靈官文魁", Name: "馬元帥"}
	marshalYin  = marshalEntry{Honorific: "地司太歲武光上將", Name: "殷元帥"}
	marshalZhao = marshalEntry{Honorific: "上清正一龍虎執法", Name: "趙元帥"}
	marshalZhou = marshalEntry{Honorific: "風輪蕩魔收怪滅邪", Name: "周元帥"}

	// investigativeMarshal takes the primary slot for exorcism work and for the Wind-Fire Hall.
	investigativeMarshal = marshalEntry{Honorific: "都天糾察大靈官", Name: "王元帥"}
)

const (
	investigativeRole = "都天糾察主將"
	demotedRole       = "本命副將"
)

// stemMarshals maps each stem to its primary marshal; stems share one per pair.
var stemMarshals = map[domain.Stem]marshalEntry{
	domain.StemJia: marshalWen, domain.StemYi: marshalWen,
	domain.StemBing: marshalMa, domain.StemDing: marshalMa,
	domain.StemWu: marshalYin, domain.StemJi: marshalYin,
	domain.StemGeng: marshalZhao, domain.StemXin: marshalZhao,
	domain.StemRen: marshalZhou, domain.StemGui: marshalZhou,
}

type elementGroup struct {
	Pair          string
	Element       string
	Organ         string
	Deity         string
	Primary       marshalEntry
	Secondary     marshalEntry
	PrimaryRole   string
	SecondaryRole string
}

// elementGroups is ordered along the generating cycle: each group's secondary
// marshal is the primary of the next group.
var elementGroups = []elementGroup{
	{Pair: "甲乙", Element: "木", Organ: "肝屬木", Deity: "東方青帝九炁真人", Primary: marshalWen, Secondary: marshalMa, PrimaryRole: "東方木德主將", SecondaryRole: "南方火德副將"},
	{Pair: "丙丁", Element: "火", Organ: "心屬火", Deity: "南方赤帝三炁真人", Primary: marshalMa, Secondary: marshalYin, PrimaryRole: "南方火德主將", SecondaryRole: "中央土德副將"},
	{Pair: "戊己", Element: "土", Organ: "脾屬土", Deity: "中央黃帝一炁真人", Primary: marshalYin, Secondary: marshalZhao, PrimaryRole: "中央土德主將", SecondaryRole: "西方金德副將"},
	{Pair: "庚辛", Element: "金", Organ: "肺屬金", Deity: "西方白帝七炁真人", Primary: marshalZhao, Secondary: marshalZhou, PrimaryRole: "西方金德主將", SecondaryRole: "北方水德副將"},
	{Pair: "壬癸", Element: "水", Organ: "腎屬水", Deity: "北方黑帝五炁真人", Primary: marshalZhou, Secondary: marshalWen, PrimaryRole: "北方水德主將", SecondaryRole: "東方木德副將"},
}

var defaultElementGroup = elementGroup{
	Pair: "", Element: "五行", Organ: "五臟", Deity: "三炁真人",
	Primary: marshalWen, Secondary: marshalMa, PrimaryRole: "本命主將", SecondaryRole: "本命副將",
}

func elementGroupFor(s domain.Stem) elementGroup {
	i := s.Index()
	if i < 0 {
		return defaultElementGroup
	}
	return elementGroups[i/2]
}

type branchEntry struct {
	Troops       string
	HeartMarshal string
	Hall         string
	Palace       string
	Bureau       string
}

// branchTable is keyed by the year branch. Heart marshals follow the verse
// 子辛 丑鄧 寅趙 卯張 辰魯 巳馬 午王 未殷 申溫 酉康 戌關 亥方.
var branchTable = map[domain.Branch]branchEntry{
	domain.BranchZi:   {Troops: "一萬三千零五十名", HeartMarshal: "辛元帥", Hall: "泰玄府", Palace: "招真仙宮", Bureau: "知天曹紀錄司"},
	domain.BranchChou: {Troops: "七萬一千名", HeartMarshal: "鄧元帥", Hall: "都天府", Palace: "宜男仙宮", Bureau: "知天曹考察司"},
	domain.BranchYin:  {Troops: "一萬一千名", HeartMarshal: "趙元帥", Hall: "執法府", Palace: "祈嗣仙宮", Bureau: "知天曹功曹司"},
	domain.BranchMao:  {Troops: "三百八十名", HeartMarshal: "張元帥", Hall: "勾陳府", Palace: "集善仙宮", Bureau: "知天曹主案司"},
	domain.BranchChen: {Troops: "一千四百七十名", HeartMarshal: "魯元帥", Hall: "鳳閣府", Palace: "集善仙宮", Bureau: "知天曹賞善司"},
	domain.BranchSi:   {Troops: "七百名", HeartMarshal: "馬元帥", Hall: "彤華府", Palace: "延慶仙宮", Bureau: "知天曹罰惡司"},
	domain.BranchWu:   {Troops: "一千名", HeartMarshal: "王元帥", Hall: "威德府", Palace: "長樂仙宮", Bureau: "知天曹執法司"},
	domain.BranchWei:  {Troops: "十萬名", HeartMarshal: "殷元帥", Hall: "宣威府", Palace: "慈愛仙宮", Bureau: "知天曹監督司"},
	domain.BranchShen: {Troops: "一萬名", HeartMarshal: "溫元帥", Hall: "揚威府", Palace: "移仗仙宮", Bureau: "知天曹司籍司"},
	domain.BranchYou:  {Troops: "三萬名", HeartMarshal: "康元帥", Hall: "耀武府", Palace: "招賢仙宮", Bureau: "知天曹考校司"},
	domain.BranchXu:   {Troops: "八千名", HeartMarshal: "關元帥", Hall: "振武府", Palace: "廣德仙宮", Bureau: "知天曹檢核司"},
	domain.BranchHai:  {Troops: "五百名", HeartMarshal: "方元帥", Hall: "廣德府", Palace: "招順仙宮", Bureau: "知天曹注籍司"},
}

var defaultBranchEntry = branchEntry{Troops: "一千名", HeartMarshal: "王元帥", Hall: "泰玄府", Palace: "招真仙宮", Bureau: "知天曹紀錄司"}

type hourEntry struct {
	Authority string
	Desc      string
	Role      string
}

// hourTable is keyed by the birth-hour branch.
var hourTable = map[domain.Branch]hourEntry{
	domain.BranchZi:   {Authority: "北極驅邪院事", Desc: "主夜半陰陽交會，掌驅邪治祟、收禁邪精。", Role: "驅邪"},
	domain.BranchChou: {Authority: "天醫院事", Desc: "主療疾濟苦，掌符水治病、拔除沉痾。", Role: "濟度"},
	domain.BranchYin:  {Authority: "雷霆都司事", Desc: "主興雲致雨，掌召役雷將、驅使風霆。", Role: "雷霆"},
	domain.BranchMao:  {Authority: "東嶽速報司事", Desc: "主申奏文檢，掌功過考核、善惡速報。", Role: "考功"},
	domain.BranchChen: {Authority: "龍神水府事", Desc: "主祈晴禱雨，掌江河水族、龍神行雨。", Role: "龍章"},
	domain.BranchSi:   {Authority: "南方火部事", Desc: "主禳火消災，掌焚符燒化、火部兵馬。", Role: "火府"},
	domain.BranchWu:   {Authority: "斗中司命事", Desc: "主延生度厄，掌祈福增壽、注錄生籍。", Role: "司命"},
	domain.BranchWei:  {Authority: "土府地祇事", Desc: "主安宅鎮土，掌謝土安龍、地祇營衛。", Role: "鎮土"},
	domain.BranchShen: {Authority: "五雷院事", Desc: "主斬妖伏魔，掌考召鬼神、五雷正法。", Role: "五雷"},
	domain.BranchYou:  {Authority: "太乙救苦司事", Desc: "主超度亡魂，掌薦拔幽冥、破獄度苦。", Role: "救苦"},
	domain.BranchXu:   {Authority: "城隍社令事", Desc: "主追攝邪祟，掌關牒移文、社令兵馬。", Role: "糾察"},
	domain.BranchHai:  {Authority: "北斗注生司事", Desc: "主禮斗解厄，掌星辰祈禳、注生延壽。", Role: "斗府"},
}

var defaultHourEntry = hourEntry{Authority: "三界便宜事", Desc: "兼理三界便宜之事。", Role: "奉行"}

type levelEntry struct {
	Scripture string
	Rank      string
	Verb      string
}

var levelTable = map[domain.Level]levelEntry{
	domain.LevelFirst:     {Scripture: "太上三五都功經籙", Rank: "九品仙官", Verb: "奏受"},
	domain.LevelAugmented: {Scripture: "太上正一盟威經籙", Rank: "五品仙官", Verb: "加受"},
	domain.LevelPromoted:  {Scripture: "上清三洞五雷經籙", Rank: "三品仙卿", Verb: "晉受"},
}

var defaultLevelEntry = levelTable[domain.LevelFirst]

type treasuryEntry struct {
	Treasury string
	Official string
}

var treasuryTable = map[domain.Stem]treasuryEntry{
	domain.StemJia:  {Treasury: "功德庫", Official: "陳玉"},
	domain.StemYi:   {Treasury: "照證庫", Official: "高明"},
	domain.StemBing: {Treasury: "平等庫", Official: "周全"},
	domain.StemDing: {Treasury: "善惡庫", Official: "王正"},
	domain.StemWu:   {Treasury: "拷掠庫", Official: "石達"},
	domain.StemJi:   {Treasury: "掠剩庫", Official: "錢真"},
	domain.StemGeng: {Treasury: "祿福庫", Official: "崔正"},
	domain.StemXin:  {Treasury: "錄善庫", Official: "吉兆"},
	domain.StemRen:  {Treasury: "報應庫", Official: "甘上"},
	domain.StemGui:  {Treasury: "超昇庫", Official: "劉元"},
}

var defaultTreasuryEntry = treasuryEntry{Treasury: "功德庫", Official: "陳玉"}

// titleRange bounds are month*100+day, inclusive.
type titleRange struct {
	From, To int
	Base     string
}

var titleRanges = []titleRange{
	{From: 101, To: 312, Base: "玄靜"},
	{From: 313, To: 330, Base: "容神"},
	{From: 401, To: 612, Base: "暢玄"},
	{From: 613, To: 630, Base: "容成"},
	{From: 701, To: 912, Base: "宣道"},
	{From: 913, To: 930, Base: "阮道"},
	{From: 1001, To: 1212, Base: "遠遊"},
}

// defaultTitleBase catches every date outside titleRanges.
const defaultTitleBase = "耽道"

var honorificSuffix = map[domain.Gender]string{
	domain.Male:   "先生",
	domain.Female: "元君",
}

var rankNoun = map[domain.Gender]string{
	domain.Male:   "法師",
	domain.Female: "仙姑",
}

type shrineEntry struct {
	Altar      string
	Jing       string
	Governance string
}

// shrineTable only carries the authored combinations; everything else
// resolves to defaultShrine.
var shrineTable = map[string]shrineEntry{
	"甲子": {Altar: "應妙合英壇", Jing: "通玄致真靖", Governance: "陽平治左平炁"},
	"乙丑": {Altar: "靈應通真壇", Jing: "致真通玄靖", Governance: "蒙秦治左領功炁"},
	"丙寅": {Altar: "靈真應妙壇", Jing: "通玄致真靖", Governance: "陽平治左平炁"},
	"丁卯": {Altar: "三界集神壇", Jing: "洞真自然靖", Governance: "葛璝治左都領炁"},
	"戊辰": {Altar: "三界混元壇", Jing: "天一保真靖", Governance: "湳沅治左部長炁"},
	"己巳": {Altar: "三界集真壇", Jing: "登心復真靖", Governance: "平蓋治右領功炁"},
	"庚午": {Altar: "玄一守真壇", Jing: "保性弘真靖", Governance: "雲台治右都監炁"},
	"辛未": {Altar: "玄妙通真壇", Jing: "登真明性靖", Governance: "玉局治左察炁"},
	"壬申": {Altar: "通玄合真壇", Jing: "混合明真靖", Governance: "公慕治右都炁"},
	"癸酉": {Altar: "玄妙應真壇", Jing: "後城合真靖", Governance: "後城治右都炁"},
}

var defaultShrine = shrineEntry{Altar: "玄靈應妙壇", Jing: "通玄致真靖", Governance: "陽平治左平炁"}

const governanceSuffix = "係天師門下"

var invocations = map[string]string{
	marshalWen.FullName():           "都巡太保，忠烈威靈，手持金鐧，巡察人間善惡；受令即行，護道驅邪，保境安民。",
	marshalMa.FullName():            "三眼靈光，金磚火丹，解厄救苦，文魁武略；威鎮南方，焚邪滅祟，應召無停。",
	marshalYin.FullName():           "地司太歲，武光上將，執鉞持鐘，統領年神；剿除凶煞，扶正黜邪，威德無邊。",
	marshalZhao.FullName():          "玄壇龍虎，正一執法，跨虎揮鞭，驅雷役電；招財利市，除瘟剪祟，護持正法。",
	marshalZhou.FullName():          "風輪大將，蕩魔收怪，乘風御火，滅絕邪精；號令所至，萬鬼潛形，妖氛盡掃。",
	investigativeMarshal.FullName(): "先天首將，赤心忠良，金鞭糾察，三界無私；上奉玉旨，下察人間，善者賜福，惡者誅殃。",
}

const genericInvocation = "威靈顯赫，護道降魔，隨召隨臨，有感必應。"

// CelestialGenerals lists the thirty-six generals attending the Celestial Master.
var CelestialGenerals = []string{
	"張節", "趙公明", "辛漢臣", "荀劉吉", "畢京遠",
	"吳明遠", "殷郊", "王善", "關羽", "鄧伯溫",
	"方貢", "嶽遠信", "李音天", "陳元遠", "呂魁",
	"周清遠", "林太華", "范雷細", "崔志旭", "劉德",
	"江飛捷", "賀天祥", "康堯", "耿通", "梅天梅",
	"馬勝", "龐煜", "鐵天天", "寶將", "宋彥", "宋迪", "田守元",
	"莫太尉", "寧元帥", "任元帥", "陶元帥",
}
