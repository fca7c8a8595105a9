package main

// seedRepo populates repoKey with a sample friend-link config and manual
// overrides so the editor has something to show on first start.
func seedRepo(s *store, repoKey, linksPath, manualCheckPath string) {
	s.setFile(repoKey, linksPath, sampleLinks)
	s.setFile(repoKey, manualCheckPath, sampleManualCheck)
}

const sampleLinks = `- class_name: 友情链接
  class_desc: 那些人，那些事
  link_list:
    - name: Hexo
      link: https://hexo.io/
      avatar: https://d33wubrfki0l68.cloudfront.net/6657ba50e702d84afb32fe846bed54fba1a77add/827ae/logo.svg
      descr: 快速、简单且强大的网志框架
    - name: Example Blog
      link: https://blog.example.com/
      avatar: https://blog.example.com/avatar.png
      descr: Notes on things

- class_name: 技术支持
  class_desc: 本站使用的服务
  link_list:
    - name: GitHub
      link: https://github.com/
      avatar: https://github.githubassets.com/favicons/favicon.svg
      descr: Where the code lives
`

const sampleManualCheck = `{
  "https://blog.example.com/": "正常"
}
`
