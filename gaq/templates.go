package gaq

// Fixed ga.js fragments. Analytics infrastructure parses and executes these
// as-is, so they must stay byte-identical to the deployed tag.
const (
	scriptOpen  = `<script type="text/javascript">`
	scriptClose = `</script>`

	queueInitFormat = `var _gaq = _gaq || [];_gaq.push(['_setAccount', '%s']);`

	trackPageview    = `_gaq.push(['_trackPageview']);`
	trackPageviewURL = `_gaq.push(['_trackPageview', '%s']);`

	setCustomVarFormat     = `_gaq.push(['_setCustomVar', %d, '%s', '%s', %d]);`
	referrerOverrideFormat = `_gaq.push(['_setReferrerOverride', '%s']);`
	setCampValuesFormat    = `_gaq.push(function() {extga._setCampValues('%s','%s','%s','%s','%s');});`

	trackEventPrefix  = `_gaq.push(['_trackEvent', '%s', '%s', '%s'`
	trackSocialPrefix = `_gaq.push(['_trackSocial', '%s', '%s'`
	pushClose         = `]);`

	// gaLoader injects ga.js asynchronously, choosing the ssl host for https pages.
	gaLoader = `(function() {var ga = document.createElement('script'); ga.type = 'text/javascript'; ga.async = true;ga.src = ('https:' == document.location.protocol ? 'https://ssl' : 'http://www') + '.google-analytics.com/ga.js';var s = document.getElementsByTagName('script')[0]; s.parentNode.insertBefore(ga, s);})();`

	// utmzLibrary rewrites the __utmz campaign cookie. It defines Utmz and the
	// extga helper whose _setCampValues(source, medium, name, term, content)
	// is queued by ManualCampaignInitCode.
	utmzLibrary = `function Utmz(a){this.v=unescape(a);this.sr="(direct)";this.cn="(direct)";this.cmd="(none)";this.s="utmcsr="+this.sr+"|utmccn="+this.cn+"|utmcmd="+this.cmd;if(a!=null){this.s=a.replace(/^[0-9\.]*/,"");a.replace(/utmcsr=([^\|]*)\|utmccn=([^\|]*)\|utmcmd=([^|]*)/,function(){this.sr=arguments[1];this.cn=arguments[2];this.cmd=arguments[3]})}this.sv=function(){extga._sc("__utmz",this.v,182)};this.isNew=function(){return this.v=="null"};this._setCampName=function(b){this.v=this.v.replace(/utmccn=([^\|]*)/,"utmccn="+b);this.sv()};this._setCampSource=function(b){this.v=this.v.replace(/utmcsr=([^\|]*)/,"utmcsr="+b);this.sv()};this._setCampMedium=function(b){this.v=this.v.replace(/utmcmd=([^\|]*)/,"utmcmd="+b);this.sv()};this._setCampTerm=function(b){this.v=this.v.match(/utmctr=/)?this.v.replace(/utmctr=([^\|]*)/,"utmctr="+b):this.v+"|utmctr="+b;this.sv()};this._setCampContent=function(b){this.v=this.v.match(/utmcct=/)?this.v.replace(/utmcct=([^|]*)/,"utmcct="+b):this.v+"|utmcct="+b;this.sv()};this._reset=function(){this.v=this.v.replace(/^([0-9\.]*).*$/,"$1utmcsr=(direct)|utmccn=(direct)|utmcmd=(none)")}}var extga={_fm:false,_fr:false,_rc:function(b){var c=new RegExp(b+"=([^;]*)","i");var a=document.cookie.match(c);return(a&&a.length==2)?a[1]:null},_Ua:function(a){if(a!=""){return" domain="+a}else{if(document.domain.match(/^www/)!=null){return" domain="+document.domain.replace(/^www/,"")}else{return" domain="+document.domain}}},_sc:function(g,i,h){var a=new Date();a.setTime(a.getTime()+(((typeof(h)!="undefined")?h:3)*24*60*60*1000));var d=g+"="+i+"; expires="+a.toGMTString()+"; path=/;"+this._Ua(this.domain);document.cookie=d},_reset:false,_setCampValues:function(l,d,i,c,j,k){extga.domain=k||"";extga.outmz=new Utmz(extga._rc("__utmz"));_gaq.push(["_initData"]);extga.nutmz=new Utmz(extga._rc("__utmz"));if(extga.outmz.s!=extga.nutmz.s){extga._fr=true;extga.outmz=new Utmz(extga._rc("__utmz"))}else{if(extga.outmz.isNew()){extga._direct=true}}if(extga._getCampValues().medium=="referral"){extga._fm=true}if(extga._fm||!extga._fr){if(extga._reset){extga.nutmz._reset()}if(l){extga.nutmz._setCampSource(l)}if(d){extga.nutmz._setCampMedium(d)}if(i){extga.nutmz._setCampName(i)}if(c){extga.nutmz._setCampTerm(c)}if(j){extga.nutmz._setCampContent(j)}}},_getCampValues:function(){var b={sr:"source",cn:"name",md:"medium",ct:"content",tr:"term"};var c=unescape(extga._rc("__utmz"));var a={source:"",medium:"",name:"",term:"",content:"",isDirect:function(){return(a.content==""&&a.medium=="(none)"&&a.name=="(direct)"&&a.source=="(direct)"&&a.term=="")},isOrganic:function(){return(a.medium=="organic"&&a.name=="(organic)")},isCampaign:function(d){var e=new RegExp("("+d+")");return a.name.match(e)!=null}};if(c!=null){c.replace(/utmc([a-z]{2})=([^\|]*)/g,function(d,f,e){a[b[f]]=e})}return a}};`
)
