// internal/catalog/builtin.go
package catalog

import "sync"

// Claves de las categorías incluidas, en orden de catálogo.
const (
	SocialNetworks       = "social_networks"
	MessagingApps        = "messaging_apps"
	ProfessionalNetworks = "professional_networks"
	LeakDatabases        = "leak_databases"
	PublicRecords        = "public_records"
	BusinessDirectories  = "business_directories"
	TechResources        = "tech_resources"
	JobSites             = "job_sites"
	Classifieds          = "classifieds"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default retorna el catálogo incluido. Se construye una sola vez.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = MustNew(Builtin())
	})
	return defaultCatalog
}

// Builtin retorna una copia nueva de las categorías incluidas.
func Builtin() []Category {
	return []Category{
		{Name: SocialNetworks, Sources: []Source{
			{"Facebook", "https://www.facebook.com/search/top/?q={phone}"},
			{"LinkedIn", "https://www.linkedin.com/search/results/all/?keywords={phone}"},
			{"Twitter", "https://twitter.com/search?q={phone}"},
			{"Instagram", "https://www.instagram.com/explore/tags/{phone}"},
			{"VKontakte", "https://vk.com/search?c[q]={phone}&c[section]=people"},
			{"Odnoklassniki", "https://ok.ru/search?st.query={phone}"},
			{"Pinterest", "https://www.pinterest.com/search/pins/?q={phone}"},
			{"TikTok", "https://www.tiktok.com/search?q={phone}"},
			{"YouTube", "https://www.youtube.com/results?search_query={phone}"},
			{"Reddit", "https://www.reddit.com/search/?q={phone}"},
			{"Tumblr", "https://www.tumblr.com/search/{phone}"},
			{"Flickr", "https://www.flickr.com/search/?text={phone}"},
			{"MySpace", "https://myspace.com/search?q={phone}"},
			{"Discord", "https://discord.com/users/{phone}"},
			{"Twitch", "https://www.twitch.tv/search?term={phone}"},
		}},
		{Name: MessagingApps, Sources: []Source{
			{"WhatsApp", "https://wa.me/{phone}"},
			{"Telegram", "https://t.me/{phone}"},
			{"Viber", "viber://chat?number={phone}"},
			{"Skype", "skype:{phone}?call"},
			{"WeChat", "weixin://dl/chat?{phone}"},
			{"Line", "line://ti/p/{phone}"},
			{"Signal", "signal://chat?number={phone}"},
			{"KakaoTalk", "kakaotalk://profiles/{phone}"},
			{"ICQ", "https://icq.im/{phone}"},
			{"Snapchat", "https://www.snapchat.com/add/{phone}"},
		}},
		{Name: ProfessionalNetworks, Sources: []Source{
			{"LinkedIn", "https://www.linkedin.com/search/results/all/?keywords={phone}"},
			{"GitHub", "https://github.com/search?q={phone}&type=users"},
			{"GitLab", "https://gitlab.com/search?search={phone}"},
			{"BitBucket", "https://bitbucket.org/search?q={phone}"},
			{"StackOverflow", "https://stackoverflow.com/search?q={phone}"},
			{"AngelList", "https://angel.co/search?q={phone}"},
			{"Xing", "https://www.xing.com/search?q={phone}"},
			{"Behance", "https://www.behance.net/search?search={phone}"},
			{"Dribbble", "https://dribbble.com/search/{phone}"},
			{"DeviantArt", "https://www.deviantart.com/search?q={phone}"},
			{"Medium", "https://medium.com/search?q={phone}"},
			{"ProductHunt", "https://www.producthunt.com/search?q={phone}"},
			{"HackerNews", "https://hn.algolia.com/?q={phone}"},
		}},
		{Name: LeakDatabases, Sources: []Source{
			{"HaveIBeenPwned", "https://haveibeenpwned.com/search?q={phone}"},
			{"DeHashed", "https://dehashed.com/search?query={phone}"},
			{"LeakCheck", "https://leakcheck.net/search?type=phone&query={phone}"},
			{"SnusBase", "https://snusbase.com/search?type=phone&term={phone}"},
			{"LeakPeek", "https://leakpeek.com/search?q={phone}"},
			{"IntelX", "https://intelx.io/?s={phone}"},
			{"LeakSite", "https://leak-lookup.com/search?type=phone&query={phone}"},
			{"BreachDirectory", "https://breachdirectory.org/{phone}"},
			{"WikiLeaks", "https://search.wikileaks.org/?q={phone}"},
			{"DataBreaches", "https://www.databreaches.net/?s={phone}"},
		}},
		{Name: PublicRecords, Sources: []Source{
			{"TruePeopleSearch", "https://www.truepeoplesearch.com/results?phoneno={phone}"},
			{"FastPeopleSearch", "https://www.fastpeoplesearch.com/{phone}"},
			{"WhitePages", "https://www.whitepages.com/phone/{phone}"},
			{"411", "https://www.411.com/phone/{phone}"},
			{"Spokeo", "https://www.spokeo.com/{phone}"},
			{"PeopleFinder", "https://www.peoplefinder.com/reverse-phone/{phone}"},
			{"ZabaSearch", "https://www.zabasearch.com/phone/{phone}"},
			{"AnyWho", "https://www.anywho.com/phone/{phone}"},
			{"USSearch", "https://www.ussearch.com/search/phone/{phone}"},
			{"SearchPeopleFree", "https://www.searchpeoplefree.com/phone-lookup/{phone}"},
			{"PublicRecords", "https://www.publicrecords.com/phone/{phone}"},
		}},
		{Name: BusinessDirectories, Sources: []Source{
			{"YellowPages", "https://www.yellowpages.com/search?q={phone}"},
			{"Yelp", "https://www.yelp.com/search?find_desc={phone}"},
			{"BBB", "https://www.bbb.org/search?find_text={phone}"},
			{"Manta", "https://www.manta.com/search?search={phone}"},
			{"ChamberOfCommerce", "https://www.chamberofcommerce.com/united-states?q={phone}"},
			{"Foursquare", "https://foursquare.com/explore?q={phone}"},
			{"DnB", "https://www.dnb.com/business-directory/company-search.html?term={phone}"},
			{"OpenCorporates", "https://opencorporates.com/search?q={phone}"},
			{"CrunchBase", "https://www.crunchbase.com/search/organizations?q={phone}"},
		}},
		{Name: TechResources, Sources: []Source{
			{"Shodan", "https://www.shodan.io/search?query={phone}"},
			{"Censys", "https://censys.io/ipv4?q={phone}"},
			{"ZoomEye", "https://www.zoomeye.org/searchResult?q={phone}"},
			{"VirusTotal", "https://www.virustotal.com/gui/search/{phone}"},
			{"SecurityTrails", "https://securitytrails.com/list/keyword/{phone}"},
			{"GreyNoise", "https://viz.greynoise.io/query/?gnql={phone}"},
			{"BinaryEdge", "https://app.binaryedge.io/services/query/{phone}"},
			{"Pastebin", "https://pastebin.com/search?q={phone}"},
		}},
		{Name: JobSites, Sources: []Source{
			{"Indeed", "https://www.indeed.com/jobs?q={phone}"},
			{"Monster", "https://www.monster.com/jobs/search/?q={phone}"},
			{"CareerBuilder", "https://www.careerbuilder.com/jobs?keywords={phone}"},
			{"Glassdoor", "https://www.glassdoor.com/Job/jobs.htm?sc.keyword={phone}"},
			{"ZipRecruiter", "https://www.ziprecruiter.com/candidate/search?search={phone}"},
			{"SimplyHired", "https://www.simplyhired.com/search?q={phone}"},
			{"Dice", "https://www.dice.com/jobs?q={phone}"},
			{"HeadHunter", "https://hh.ru/search/vacancy?text={phone}"},
		}},
		{Name: Classifieds, Sources: []Source{
			{"Craigslist", "https://www.craigslist.org/search/sss?query={phone}"},
			{"eBay", "https://www.ebay.com/sch/i.html?_nkw={phone}"},
			{"Amazon", "https://www.amazon.com/s?k={phone}"},
			{"Avito", "https://www.avito.ru/rossiya?q={phone}"},
			{"Gumtree", "https://www.gumtree.com/search?q={phone}"},
			{"Kijiji", "https://www.kijiji.ca/b-all/canada/{phone}/k0l0"},
			{"OLX", "https://www.olx.com/items/q-{phone}"},
		}},
	}
}
